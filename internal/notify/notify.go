package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a fire-and-forget message to the user: something happened.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// New builds a notification with a fresh id and timestamp.
func New(userID, title, description string, severity Severity) Notification {
	return Notification{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Severity:    severity,
		CreatedAt:   time.Now(),
	}
}

// Sink delivers notifications. Callers treat delivery as best-effort: a sink
// error never fails the operation that produced the notification.
type Sink interface {
	Publish(ctx context.Context, n Notification) error
}
