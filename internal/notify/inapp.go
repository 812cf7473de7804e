package notify

import (
	"context"
	"fmt"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/utils"
)

// InApp stores a notification row the recipient can read back through the
// notifications endpoints.
type InApp struct {
	repo repository.ProcurementDB
}

// NewInApp creates a new InApp instance
func NewInApp(repo repository.ProcurementDB) *InApp {
	return &InApp{repo: repo}
}

func (n *InApp) Dispatch(ctx context.Context, ev model.DomainEvent) error {
	if ev.RecipientID == "" {
		return nil
	}
	title, body := render(ev)
	notif := model.Notification{
		NotificationID: utils.GenerateID(),
		UserID:         ev.RecipientID,
		Type:           notificationType(ev.Kind),
		Title:          title,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := n.repo.CreateNotification(ctx, notif); err != nil {
		return fmt.Errorf("notify: failed to store notification for %s: %w", ev.RecipientID, err)
	}
	return nil
}

func notificationType(kind model.EventKind) string {
	switch kind {
	case model.EventApplicationSubmitted, model.EventApplicationStatusChanged:
		return "application"
	case model.EventTenderCreated, model.EventTenderUpdated, model.EventTenderDeleted,
		model.EventTenderClosed, model.EventTenderArchived:
		return "tender"
	}
	return "system"
}
