package award

import (
	"context"
	"sync"
	"testing"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/tendererrors"

	"github.com/stretchr/testify/require"
)

func seed(repo *repository.MemoryRepo, tenderStatus model.TenderStatus, appStatus model.ApplicationStatus) {
	repo.AddTender(model.Tender{
		TenderID:     "t1",
		Title:        "Bridge inspection",
		Status:       tenderStatus,
		Deadline:     time.Now().UTC().Add(24 * time.Hour),
		CompanyName:  "Acme Ltd",
		ContactEmail: "owner@acme.test",
		CreatedBy:    "owner1",
	})
	repo.AddApplication(model.Application{
		ApplicationID: "a1",
		TenderID:      "t1",
		BidderID:      "bidder1",
		BidderName:    "Bidder One",
		Email:         "bidder1@bidders.test",
		Status:        appStatus,
	})
}

// Tests Award
func TestArbitrator_Award(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	owner := model.Actor{ID: "owner1", Role: model.RoleIssuer}

	tests := []struct {
		name          string
		actor         model.Actor
		tenderStatus  model.TenderStatus
		appStatus     model.ApplicationStatus
		expectedError error
	}{
		{name: "owner_awards_active_tender", actor: owner, tenderStatus: model.TenderActive, appStatus: model.ApplicationPending},
		{name: "owner_awards_closed_tender", actor: owner, tenderStatus: model.TenderClosed, appStatus: model.ApplicationPending},
		{name: "admin_awards", actor: model.Actor{ID: "admin1", Role: model.RoleAdmin}, tenderStatus: model.TenderActive, appStatus: model.ApplicationPending},
		{name: "stranger_forbidden", actor: model.Actor{ID: "owner2", Role: model.RoleIssuer}, tenderStatus: model.TenderActive, appStatus: model.ApplicationPending, expectedError: tendererrors.ErrForbidden},
		{name: "archived_tender_conflicts", actor: owner, tenderStatus: model.TenderArchived, appStatus: model.ApplicationPending, expectedError: tendererrors.ErrTenderArchived},
		{name: "withdrawn_application_conflicts", actor: owner, tenderStatus: model.TenderActive, appStatus: model.ApplicationWithdrawn, expectedError: tendererrors.ErrNotPending},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := repository.NewMemoryRepo()
			seed(repo, tc.tenderStatus, tc.appStatus)
			arbitrator := NewArbitrator(repo)

			res, err := arbitrator.Award(ctx, tc.actor, "a1")
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.ApplicationAccepted, res.Accepted.Status)
			require.Equal(t, model.TenderArchived, res.Tender.Status)
		})
	}

	t.Run("missing_application", func(t *testing.T) {
		t.Parallel()

		arbitrator := NewArbitrator(repository.NewMemoryRepo())
		_, err := arbitrator.Award(ctx, owner, "no-such")
		require.ErrorIs(t, err, tendererrors.ErrApplicationNotFound)
	})

	// The forbidden answer must win over the conflict answer: outsiders
	// never learn whether a tender is already settled.
	t.Run("forbidden_before_conflict", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seed(repo, model.TenderArchived, model.ApplicationPending)
		arbitrator := NewArbitrator(repo)

		_, err := arbitrator.Award(ctx, model.Actor{ID: "owner2", Role: model.RoleIssuer}, "a1")
		require.ErrorIs(t, err, tendererrors.ErrForbidden)
		require.NotErrorIs(t, err, tendererrors.ErrConflict)
	})

	// concurrency test: both applications raced through the arbitrator,
	// exactly one acceptance survives
	t.Run("concurrent_awards_single_winner", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seed(repo, model.TenderActive, model.ApplicationPending)
		repo.AddApplication(model.Application{
			ApplicationID: "a2",
			TenderID:      "t1",
			BidderID:      "bidder2",
			Email:         "bidder2@bidders.test",
			Status:        model.ApplicationPending,
		})
		arbitrator := NewArbitrator(repo)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, appID := range []string{"a1", "a2"} {
			wg.Add(1)
			i, appID := i, appID
			go func() {
				defer wg.Done()
				_, errs[i] = arbitrator.Award(ctx, owner, appID)
			}()
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				require.ErrorIs(t, err, tendererrors.ErrConflict)
			}
		}
		require.Equal(t, 1, winners)
	})
}
