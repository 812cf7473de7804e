package notify

import (
	"context"
	"errors"
	"fmt"

	model "tender-tracker/internal/models"
)

// Notifier delivers one domain event to some channel. Delivery is
// best-effort: an error here never touches tender or application state,
// it only keeps the event queued for another attempt.
type Notifier interface {
	Dispatch(ctx context.Context, ev model.DomainEvent) error
}

// Fanout delivers an event to every sink and joins their failures, so a
// broken channel does not starve the others.
type Fanout struct {
	sinks []Notifier
}

// NewFanout creates a new Fanout instance
func NewFanout(sinks ...Notifier) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Dispatch(ctx context.Context, ev model.DomainEvent) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Dispatch(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// render turns an event into a human-readable notification.
func render(ev model.DomainEvent) (title, body string) {
	switch ev.Kind {
	case model.EventTenderCreated:
		return "Tender Created", fmt.Sprintf("Tender %q was created successfully.", ev.TenderTitle)
	case model.EventTenderUpdated:
		return "Tender Updated", fmt.Sprintf("Tender %q was updated.", ev.TenderTitle)
	case model.EventTenderDeleted:
		return "Tender Deleted", fmt.Sprintf("Tender %q was deleted.", ev.TenderTitle)
	case model.EventTenderClosed:
		return "Tender Closed", fmt.Sprintf("Tender %q reached its deadline and no longer accepts applications.", ev.TenderTitle)
	case model.EventTenderArchived:
		return "Tender Archived", fmt.Sprintf("Tender %q was awarded and archived.", ev.TenderTitle)
	case model.EventApplicationSubmitted:
		return "New Application", fmt.Sprintf("A new application was submitted to tender %q.", ev.TenderTitle)
	case model.EventApplicationStatusChanged:
		switch model.ApplicationStatus(ev.Status) {
		case model.ApplicationAccepted:
			return "Application Accepted", fmt.Sprintf("Congratulations! Your application to tender %q was accepted.", ev.TenderTitle)
		case model.ApplicationRejected:
			return "Application Rejected", fmt.Sprintf("Your application to tender %q was rejected.", ev.TenderTitle)
		case model.ApplicationWithdrawn:
			return "Application Withdrawn", fmt.Sprintf("Your application to tender %q was withdrawn.", ev.TenderTitle)
		}
		return "Application Updated", fmt.Sprintf("Your application to tender %q changed status to %s.", ev.TenderTitle, ev.Status)
	}
	return "Notification", fmt.Sprintf("Event %s on tender %q.", ev.Kind, ev.TenderTitle)
}
