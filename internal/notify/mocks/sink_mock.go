package mocks

import (
	"context"
	"sync"

	"github.com/example/quickbasket/internal/notify"
)

// MockSink records published notifications for assertions in tests.
type MockSink struct {
	mu sync.Mutex

	Published  []notify.Notification
	PublishErr error
}

func NewMockSink() *MockSink {
	return &MockSink{Published: make([]notify.Notification, 0)}
}

func (m *MockSink) Publish(ctx context.Context, n notify.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Published = append(m.Published, n)
	return m.PublishErr
}

// Last returns the most recently published notification.
func (m *MockSink) Last() (notify.Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Published) == 0 {
		return notify.Notification{}, false
	}
	return m.Published[len(m.Published)-1], true
}

// Reset clears recorded notifications.
func (m *MockSink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = m.Published[:0]
}
