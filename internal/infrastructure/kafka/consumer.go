package kafka

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"
)

// MessageHandler processes one notification message. Returning an error
// marks the message as failed but does not stop the consumer.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Consumer reads notification messages as part of a consumer group, so
// several worker instances share the topic's partitions.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

// Consume reads messages until the context is cancelled. Read and handler
// errors are logged and the loop continues; one bad notification must not
// stall delivery of the rest.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[Kafka] Failed to read message: %v", err)
			continue
		}

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			log.Printf("[Kafka] Failed to handle message for user %s: %v", msg.Key, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
