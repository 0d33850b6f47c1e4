package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "creatorhub"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Media uploads by bucket and outcome",
		},
		[]string{"bucket", "status"},
	)

	UploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Bytes written to object storage",
		},
		[]string{"bucket"},
	)

	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Signups, logins and refreshes by outcome",
		},
		[]string{"event", "status"},
	)

	PostEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_events_total",
			Help:      "Post lifecycle events published to the broker",
		},
		[]string{"topic", "type", "status"},
	)

	ExpiredTokensRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_refresh_tokens_removed_total",
			Help:      "Refresh tokens removed by the cleanup worker",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		UploadsTotal,
		UploadBytes,
		AuthEventsTotal,
		PostEventsTotal,
		ExpiredTokensRemoved,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records every request under its route template, so path
// parameters do not explode the label set.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func RecordRequest(method, route string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordUpload(bucket string, size int64, err error) {
	if err != nil {
		UploadsTotal.WithLabelValues(bucket, "error").Inc()
		return
	}
	UploadsTotal.WithLabelValues(bucket, "ok").Inc()
	UploadBytes.WithLabelValues(bucket).Add(float64(size))
}

func RecordAuth(event string, err error) {
	AuthEventsTotal.WithLabelValues(event, outcome(err)).Inc()
}

func RecordPostEvent(topic, eventType string, err error) {
	PostEventsTotal.WithLabelValues(topic, eventType, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
