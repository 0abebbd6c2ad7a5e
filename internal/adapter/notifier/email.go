// Package notifier provides delivery implementations of the workflow's
// notification sink. The workflow persists notification rows itself (in the
// same transaction as the state change); these implementations only handle
// outward delivery after commit.
package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"sacco-loan-service/internal/domain/notification"
)

// AddressBook resolves a member id to an email address. Member profiles are
// owned by an external system; the workflow only needs this lookup.
type AddressBook interface {
	EmailFor(ctx context.Context, memberID string) (string, error)
}

// DomainAddressBook maps member ids onto a relay domain whose mail gateway
// resolves them to real inboxes.
type DomainAddressBook struct{ Domain string }

func (d DomainAddressBook) EmailFor(_ context.Context, memberID string) (string, error) {
	return memberID + "@" + d.Domain, nil
}

// EmailNotifier sends one message per notification over SMTP.
type EmailNotifier struct {
	dialer    *gomail.Dialer
	from      string
	addresses AddressBook
}

func NewEmailNotifier(host string, port int, username, password, from string, addresses AddressBook) *EmailNotifier {
	return &EmailNotifier{
		dialer:    gomail.NewDialer(host, port, username, password),
		from:      from,
		addresses: addresses,
	}
}

func (e *EmailNotifier) Notify(ctx context.Context, n notification.Notification) error {
	to, err := e.addresses.EmailFor(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", n.RecipientID, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", n.Title)
	m.SetBody("text/html", fmt.Sprintf("<h2>%s</h2><p>%s</p>", n.Title, n.Message))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send notification email: %w", err)
	}
	return nil
}
