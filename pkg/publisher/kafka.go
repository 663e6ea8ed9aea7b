package publisher

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"triagedesk/pkg/models"
)

// KafkaSink writes ticket events to a Kafka topic, keyed by ticket ID so
// per-ticket ordering holds under partitioning.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink returns a sink for the brokers/topic, or nil when no
// brokers are configured.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Publish writes one ticket event.
func (k *KafkaSink) Publish(ctx context.Context, t *models.Ticket) error {
	value, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(t.TicketID),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (k *KafkaSink) Close() error { return k.writer.Close() }
