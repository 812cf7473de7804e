package sweeper

import (
	"context"
	"time"

	"tender-tracker/internal/repository"
	"tender-tracker/utils"
)

// Sweeper periodically closes active tenders whose deadline has passed.
// Each flip goes through the store's compare-and-set, so a sweep racing a
// concurrent read or another sweep closes a tender exactly once.
type Sweeper struct {
	repo     repository.ProcurementDB
	interval time.Duration
}

// New creates a new Sweeper instance
func New(repo repository.ProcurementDB, interval time.Duration) *Sweeper {
	return &Sweeper{repo: repo, interval: interval}
}

// Run sweeps on every tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	utils.Info("deadline sweeper started", map[string]any{"interval": s.interval.String()})
	for {
		select {
		case <-ctx.Done():
			utils.Info("deadline sweeper stopped", nil)
			return
		case <-ticker.C:
			closed, err := s.SweepAt(ctx, time.Now().UTC())
			if err != nil {
				utils.Error("sweep failed", map[string]any{"error": err.Error()})
				continue
			}
			if closed > 0 {
				utils.Info("sweep closed expired tenders", map[string]any{"count": closed})
			}
		}
	}
}

// SweepAt closes every tender that is active with a deadline before now and
// returns how many actually flipped.
func (s *Sweeper) SweepAt(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.repo.ListExpiredActive(ctx, now)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, id := range ids {
		_, flipped, err := s.repo.CloseIfExpired(ctx, id, now)
		if err != nil {
			utils.Warn("sweep could not close tender", map[string]any{"tender_id": id, "error": err.Error()})
			continue
		}
		if flipped {
			closed++
		}
	}
	return closed, nil
}
