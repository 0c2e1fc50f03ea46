package notify

import (
	"context"

	"github.com/example/quickbasket/internal/infrastructure/kafka"
)

// KafkaSink publishes notifications to the notifications topic, keyed by
// user id. cmd/notifier consumes the topic and emails the user.
type KafkaSink struct {
	producer *kafka.Producer
}

func NewKafkaSink(producer *kafka.Producer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Publish(ctx context.Context, n Notification) error {
	return s.producer.Publish(ctx, n.UserID, n)
}
