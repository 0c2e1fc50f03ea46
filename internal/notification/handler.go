package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/quickbasket/internal/email"
	"github.com/example/quickbasket/internal/identity"
	"github.com/example/quickbasket/internal/notify"
)

// Handler consumes notifications from Kafka and forwards them to the
// shopper by email.
type Handler struct {
	emailService *email.Service
	users        *identity.Provider
}

// NewHandler creates a new notification handler
func NewHandler(emailSvc *email.Service, users *identity.Provider) *Handler {
	return &Handler{
		emailService: emailSvc,
		users:        users,
	}
}

// HandleMessage processes one notification message from Kafka. Malformed
// messages and unknown users are logged and skipped so the consumer never
// stalls on a bad message.
func (h *Handler) HandleMessage(ctx context.Context, key, value []byte) error {
	var n notify.Notification
	if err := json.Unmarshal(value, &n); err != nil {
		log.Printf("[Notifier] Skipping malformed notification: %v", err)
		return nil
	}

	user, err := h.users.GetUser(ctx, n.UserID)
	if err != nil {
		log.Printf("[Notifier] Unknown user %s for notification %s: %v", n.UserID, n.ID, err)
		return nil
	}

	if err := h.emailService.SendNotification(user.Email, n); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", user.Email, err)
		return err
	}

	log.Printf("[Notifier] Sent %q to %s", n.Title, user.Email)
	return nil
}
