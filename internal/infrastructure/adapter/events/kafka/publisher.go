package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/events"
)

// Publisher sends appended ledger entries to a Kafka topic. Downstream
// consumers (fraud detection, analytics) read the feed; the ledger itself
// never depends on it.
type Publisher struct {
	writer *kafka.Writer
	logger coreport.Logger
}

// NewPublisher creates a Kafka publisher for the entry feed
func NewPublisher(brokers []string, topic string, logger coreport.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

// Publish writes a single entry event. Messages are keyed by user ID so a
// user's entries land on one partition in order.
func (p *Publisher) Publish(ctx context.Context, event events.EntryAppended) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal entry event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	})
	if err != nil {
		p.logger.Error("Failed to publish entry event", map[string]any{
			"entry_id": event.EntryID,
			"user_id":  event.UserID,
			"error":    err.Error(),
		})
		return fmt.Errorf("failed to publish entry event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
