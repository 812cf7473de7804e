package award

import (
	"context"
	"fmt"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/tendererrors"
)

// Arbitrator decides a tender by accepting exactly one application. The
// cascade (accept, archive the tender, reject every other pending
// application) is a single atomic unit inside the store; this layer adds
// the permission check and early conflict answers.
type Arbitrator struct {
	repo repository.ProcurementDB
}

// NewArbitrator creates a new Arbitrator instance
func NewArbitrator(repo repository.ProcurementDB) *Arbitrator {
	return &Arbitrator{repo: repo}
}

// Award accepts the application and settles the rest of the tender. Only
// the tender owner or an admin may award. A closed tender can still be
// awarded; an archived one cannot.
func (a *Arbitrator) Award(ctx context.Context, actor model.Actor, applicationID string) (model.AwardResult, error) {
	app, err := a.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("service: %w", err)
	}
	t, err := a.repo.GetTender(ctx, app.TenderID)
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("service: %w", err)
	}
	if actor.Role != model.RoleAdmin && actor.ID != t.CreatedBy {
		return model.AwardResult{}, fmt.Errorf("service: %w - only the tender owner may award", tendererrors.ErrForbidden)
	}
	if t.Status == model.TenderArchived {
		return model.AwardResult{}, fmt.Errorf("service: %w", tendererrors.ErrTenderArchived)
	}
	if app.Status != model.ApplicationPending {
		return model.AwardResult{}, fmt.Errorf("service: %w", tendererrors.ErrNotPending)
	}

	// The store re-checks both conditions under its own lock; the checks
	// above only produce friendlier errors on the unambiguous cases.
	res, err := a.repo.AwardApplication(ctx, applicationID)
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("service: failed to award application %s: %w", applicationID, err)
	}
	return res, nil
}
