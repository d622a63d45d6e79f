// Package notify tells hub members about batch outcomes that need their
// attention, in-app and by email.
package notify

import (
	"context"
	"fmt"

	"github.com/Dan9191/budget-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// KindTemplateFailed is the notification kind for a template moved to failed
const KindTemplateFailed = "recurring_template_failed"

// Store is the persistence the notifier needs
type Store interface {
	FindHub(ctx context.Context, id string) (*models.Hub, error)
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Notifier records in-app notifications and mirrors them by email when a
// Mailer is configured.
type Notifier struct {
	store  Store
	mailer Mailer
	log    *logrus.Logger
}

// NewNotifier creates a notifier. mailer may be nil to disable email.
func NewNotifier(store Store, mailer Mailer, log *logrus.Logger) *Notifier {
	return &Notifier{store: store, mailer: mailer, log: log}
}

// TemplateFailed informs the hub that t was moved to the failed status after
// failures consecutive write errors, the last one being cause.
func (n *Notifier) TemplateFailed(ctx context.Context, t models.RecurringTemplate, failures int, cause error) error {
	subject, body := templateFailedMessage(t.UserLanguage, t.Description, failures, cause.Error())

	note := &models.Notification{
		HubID: t.HubID,
		Kind:  KindTemplateFailed,
		Title: subject,
		Body:  body,
	}
	if err := n.store.CreateNotification(ctx, note); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if n.mailer == nil {
		return nil
	}
	hub, err := n.store.FindHub(ctx, t.HubID)
	if err != nil {
		return fmt.Errorf("failed to find hub: %w", err)
	}
	if hub.OwnerEmail == "" {
		n.log.WithField("hub_id", hub.ID).Debug("Hub has no owner email, skipping mail")
		return nil
	}
	return n.mailer.Send(hub.OwnerEmail, subject, body)
}
