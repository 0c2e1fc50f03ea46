package notify

import (
	"context"
	"log"
)

// LogSink writes notifications to the process log. Default sink when no
// Kafka brokers are configured.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Publish(ctx context.Context, n Notification) error {
	log.Printf("[Notify] user=%s severity=%s %s: %s", n.UserID, n.Severity, n.Title, n.Description)
	return nil
}
