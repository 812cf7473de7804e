package notify

import (
	"context"
	"time"

	"tender-tracker/internal/repository"
	"tender-tracker/utils"
)

const drainBatchSize = 64

// Dispatcher drains the event queue the store fills during commits and
// hands each event to the notifier. Delivery failures requeue the event
// with its attempt count bumped; past maxAttempts the event is dropped
// with an error log. State changes are never rolled back over delivery.
type Dispatcher struct {
	repo        repository.ProcurementDB
	notifier    Notifier
	interval    time.Duration
	maxAttempts int
}

// NewDispatcher creates a new Dispatcher instance
func NewDispatcher(repo repository.ProcurementDB, notifier Notifier, interval time.Duration, maxAttempts int) *Dispatcher {
	return &Dispatcher{repo: repo, notifier: notifier, interval: interval, maxAttempts: maxAttempts}
}

// Run drains on every tick until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	utils.Info("notification dispatcher started", map[string]any{"interval": d.interval.String()})
	for {
		select {
		case <-ctx.Done():
			utils.Info("notification dispatcher stopped", nil)
			return
		case <-ticker.C:
			if _, err := d.DrainOnce(ctx); err != nil {
				utils.Error("event drain failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// DrainOnce delivers one batch of queued events and returns how many were
// delivered successfully.
func (d *Dispatcher) DrainOnce(ctx context.Context) (int, error) {
	events, err := d.repo.DrainEvents(ctx, drainBatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, ev := range events {
		err := d.notifier.Dispatch(ctx, ev)
		if err == nil {
			delivered++
			continue
		}
		ev.Attempts++
		if ev.Attempts >= d.maxAttempts {
			utils.Error("dropping undeliverable event", map[string]any{
				"event_id": ev.EventID,
				"kind":     string(ev.Kind),
				"attempts": ev.Attempts,
				"error":    err.Error(),
			})
			continue
		}
		utils.Warn("event delivery failed, requeueing", map[string]any{
			"event_id": ev.EventID,
			"kind":     string(ev.Kind),
			"attempts": ev.Attempts,
			"error":    err.Error(),
		})
		if reqErr := d.repo.RequeueEvent(ctx, ev); reqErr != nil {
			utils.Error("failed to requeue event", map[string]any{"event_id": ev.EventID, "error": reqErr.Error()})
		}
	}
	return delivered, nil
}
