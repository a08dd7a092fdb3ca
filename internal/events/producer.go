// Package events publishes order lifecycle events to kafka for
// downstream consumers (fulfillment, analytics). Publication is
// best-effort and never blocks the checkout path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeOrderCreated  = "order_created"
	TypeOrderCaptured = "order_captured"
)

type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Description   string    `json:"description,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Producer interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NoopProducer is used when no broker is configured.
type NoopProducer struct{}

func (NoopProducer) Publish(context.Context, OrderEvent) error { return nil }
func (NoopProducer) Close() error                              { return nil }

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaProducer(brokers []string, topic string, logger *zap.Logger) *KafkaProducer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: w, logger: logger}
}

func (p *KafkaProducer) Publish(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}

	p.logger.Debug("order event published",
		zap.String("type", event.Type),
		zap.String("order_id", event.OrderID))
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
