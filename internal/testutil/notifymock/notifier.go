package notifymock

import (
	"context"
	"sync"

	"sacco-loan-service/internal/domain/notification"
)

// Sink records every notification handed to it so tests can assert on
// fan-out without a real transport.
type Sink struct {
	mu   sync.Mutex
	Err  error
	sent []notification.Notification
}

func (s *Sink) Notify(_ context.Context, n notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, n)
	return nil
}

func (s *Sink) Sent() []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notification.Notification, len(s.sent))
	copy(out, s.sent)
	return out
}

// Repo mocks notification.Repository; Create appends to Stored so tests
// can check what was persisted inside the transaction.
type Repo struct {
	Stored            []notification.Notification
	CreateFn          func(ctx context.Context, n *notification.Notification) error
	ListByRecipientFn func(ctx context.Context, recipientID string) ([]notification.Notification, error)
}

func (m *Repo) Create(ctx context.Context, n *notification.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.Stored = append(m.Stored, *n)
	return nil
}

func (m *Repo) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if m.ListByRecipientFn != nil {
		return m.ListByRecipientFn(ctx, recipientID)
	}
	return nil, nil
}
