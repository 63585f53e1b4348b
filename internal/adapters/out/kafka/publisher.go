// Package kafka publishes outbox messages to Kafka with segmentio/kafka-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairbooking/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventType = "event-type"
	HeaderMessageID = "message-id"
)

// NewWriter builds a writer for topic. Messages are hashed by key, so all events of one
// booking land on the same partition and keep their order.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes one message keyed by the booking id.
func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	if len(message.Payload) == 0 {
		return errors.New("outbox message has an empty payload")
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.AggregateID.String()),
		Value: message.Payload,
		Time:  message.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(message.Type)},
			{Key: HeaderMessageID, Value: []byte(message.ID.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to produce message to Kafka: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
