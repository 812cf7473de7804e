package notify

import (
	"context"

	model "tender-tracker/internal/models"
	"tender-tracker/utils"
)

// EmailLog is the email channel without an SMTP relay behind it: it writes
// the rendered message to the structured log. Swapping in a real sender
// means replacing this one type.
type EmailLog struct{}

// NewEmailLog creates a new EmailLog instance
func NewEmailLog() *EmailLog {
	return &EmailLog{}
}

func (e *EmailLog) Dispatch(_ context.Context, ev model.DomainEvent) error {
	if ev.RecipientEmail == "" {
		return nil
	}
	title, body := render(ev)
	utils.Info("email notification", map[string]any{
		"to":       ev.RecipientEmail,
		"subject":  title,
		"body":     body,
		"kind":     string(ev.Kind),
		"event_id": ev.EventID,
	})
	return nil
}
