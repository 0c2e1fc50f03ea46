package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/notify"
)

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation sends the order confirmation email with the full
// item table and totals.
func (s *Service) SendOrderConfirmation(to string, o *order.Order) error {
	subject := fmt.Sprintf("Order confirmed — %s", o.ID)
	body := BuildOrderConfirmationBody(o)
	return s.send(to, subject, body)
}

// SendNotification sends a short email for a lifecycle notification.
func (s *Service) SendNotification(to string, n notify.Notification) error {
	body := BuildNotificationBody(n)
	return s.send(to, n.Title, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
