package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// AlertPublisher pushes derived alert records to Kafka for the external
// notification scheduler. The service works without it; it is only wired
// when brokers are configured.
type AlertPublisher struct {
	writer *kafka.Writer
}

// NewAlertPublisher creates a Kafka publisher for the given topic.
func NewAlertPublisher(brokers []string, topic string) *AlertPublisher {
	return &AlertPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // partition by alert kind
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish writes each alert as a JSON message keyed by its kind.
func (p *AlertPublisher) Publish(ctx context.Context, alerts []models.AlertRecord) error {
	if len(alerts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(alerts))
	for _, alert := range alerts {
		value, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("failed to marshal alert %s: %w", alert.ID, err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(alert.Kind),
			Value: value,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish alerts: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (p *AlertPublisher) Close() error {
	return p.writer.Close()
}
