package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/posts/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/posts/:id", "204"))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/posts/:id", "204"))
	assert.Equal(t, 2.0, after-before)
}

func TestRecordUpload(t *testing.T) {
	okBefore := testutil.ToFloat64(UploadsTotal.WithLabelValues("posts", "ok"))
	bytesBefore := testutil.ToFloat64(UploadBytes.WithLabelValues("posts"))
	errBefore := testutil.ToFloat64(UploadsTotal.WithLabelValues("posts", "error"))

	RecordUpload("posts", 100, nil)
	RecordUpload("posts", 50, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(UploadsTotal.WithLabelValues("posts", "ok"))-okBefore)
	assert.Equal(t, 100.0, testutil.ToFloat64(UploadBytes.WithLabelValues("posts"))-bytesBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(UploadsTotal.WithLabelValues("posts", "error"))-errBefore)
}

func TestHandler_ServesMetrics(t *testing.T) {
	RecordAuth("login", nil)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "creatorhub_auth_events_total")
}
