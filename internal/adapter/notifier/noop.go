package notifier

import (
	"context"
	"log"

	"sacco-loan-service/internal/domain/notification"
)

// LogNotifier is the delivery sink used when no SMTP host is configured.
// Rows are already persisted by the workflow; this just leaves a trace.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n notification.Notification) error {
	log.Printf("notification [%s] to %s: %s", n.Type, n.RecipientID, n.Title)
	return nil
}
