package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/metrics"

	"github.com/segmentio/kafka-go"
)

// defaultPublishTimeout caps how long a request waits on the broker.
const defaultPublishTimeout = 2 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes post events keyed by creator id, so one creator's
// events stay ordered within a partition.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:      brokers,
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			MaxAttempts:  3,
		}),
		topic:   topic,
		timeout: defaultPublishTimeout,
	}
}

func (p *KafkaPublisher) PublishPost(ctx context.Context, event PostEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}

	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	writeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.CreatorID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	metrics.RecordPostEvent(p.topic, string(event.Type), err)
	if err != nil {
		return fmt.Errorf("write post event: %w", err)
	}

	logger.CtxDebug(ctx, "Post event published", "type", event.Type, "post_id", event.PostID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPost(ctx context.Context, event PostEvent) error {
	logger.CtxDebug(ctx, "Post event dropped, no broker configured", "type", event.Type, "post_id", event.PostID)
	return nil
}

func (NoopPublisher) Close() error { return nil }

// NewPublisher picks the kafka publisher when brokers are configured.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
