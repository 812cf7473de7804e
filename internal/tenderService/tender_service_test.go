package tender

import (
	"context"
	"errors"
	"testing"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/tendererrors"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validCreateInput(deadline time.Time) CreateInput {
	return CreateInput{
		Title:        "Office renovation",
		Description:  "Full renovation of the second floor",
		Category:     "construction",
		Deadline:     deadline.Format(time.RFC3339),
		CompanyName:  "Acme Ltd",
		ContactEmail: "owner@acme.test",
	}
}

// Tests Create
func TestTenderService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockProcurementDB(ctrl)
	service := NewService(mockRepo)

	ctx := context.Background()
	issuer := model.Actor{ID: "issuer1", Role: model.RoleIssuer}
	future := time.Now().UTC().Add(72 * time.Hour)

	lowBudget, highBudget := 1000.0, 5000.0

	tests := []struct {
		name          string
		actor         model.Actor
		input         func() CreateInput
		mockSetup     func()
		expectedError error
	}{
		{
			name:  "valid_tender",
			actor: issuer,
			input: func() CreateInput { return validCreateInput(future) },
			mockSetup: func() {
				mockRepo.EXPECT().CreateTender(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "admin_may_create",
			actor: model.Actor{ID: "admin1", Role: model.RoleAdmin},
			input: func() CreateInput { return validCreateInput(future) },
			mockSetup: func() {
				mockRepo.EXPECT().CreateTender(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:          "bidder_is_forbidden",
			actor:         model.Actor{ID: "bidder1", Role: model.RoleBidder},
			input:         func() CreateInput { return validCreateInput(future) },
			mockSetup:     func() {},
			expectedError: tendererrors.ErrForbidden,
		},
		{
			name:  "missing_title",
			actor: issuer,
			input: func() CreateInput {
				in := validCreateInput(future)
				in.Title = ""
				return in
			},
			mockSetup:     func() {},
			expectedError: tendererrors.ErrValidation,
		},
		{
			name:  "garbage_deadline",
			actor: issuer,
			input: func() CreateInput {
				in := validCreateInput(future)
				in.Deadline = "tomorrow-ish"
				return in
			},
			mockSetup:     func() {},
			expectedError: tendererrors.ErrValidation,
		},
		{
			name:  "past_deadline",
			actor: issuer,
			input: func() CreateInput {
				return validCreateInput(time.Now().UTC().Add(-time.Hour))
			},
			mockSetup:     func() {},
			expectedError: tendererrors.ErrValidation,
		},
		{
			name:  "budget_min_above_max",
			actor: issuer,
			input: func() CreateInput {
				in := validCreateInput(future)
				in.BudgetMin = &highBudget
				in.BudgetMax = &lowBudget
				return in
			},
			mockSetup:     func() {},
			expectedError: tendererrors.ErrValidation,
		},
		{
			name:  "unsupported_initial_status",
			actor: issuer,
			input: func() CreateInput {
				in := validCreateInput(future)
				in.Status = "archived"
				return in
			},
			mockSetup:     func() {},
			expectedError: tendererrors.ErrValidation,
		},
		{
			name:  "repo_fails",
			actor: issuer,
			input: func() CreateInput { return validCreateInput(future) },
			mockSetup: func() {
				mockRepo.EXPECT().CreateTender(gomock.Any(), gomock.Any()).Return(errors.New("store down"))
			},
			expectedError: nil, // wrapped repo error, no sentinel to match
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			got, err := service.Create(ctx, tc.actor, tc.input())

			if tc.name == "valid_tender" || tc.name == "admin_may_create" {
				require.NoError(t, err)
				require.NotEmpty(t, got.TenderID)
				_, parseErr := uuid.Parse(got.TenderID)
				require.NoError(t, parseErr, "TenderID should be a valid UUID")
				require.Equal(t, model.TenderActive, got.Status)
				require.Equal(t, tc.actor.ID, got.CreatedBy)
				return
			}

			require.Error(t, err)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			}
		})
	}
}

// Tests Update
func TestTenderService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockProcurementDB(ctrl)
	service := NewService(mockRepo)

	ctx := context.Background()
	owner := model.Actor{ID: "issuer1", Role: model.RoleIssuer}
	future := time.Now().UTC().Add(72 * time.Hour)

	stored := model.Tender{
		TenderID:  "t1",
		Title:     "Office renovation",
		Status:    model.TenderActive,
		Deadline:  future,
		CreatedBy: "issuer1",
	}

	newTitle := "Office renovation phase 2"
	badStatus := "archived"

	tests := []struct {
		name          string
		actor         model.Actor
		input         UpdateInput
		mockSetup     func()
		expectedError error
	}{
		{
			name:  "owner_patches_title",
			actor: owner,
			input: UpdateInput{Title: &newTitle},
			mockSetup: func() {
				mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(stored, nil)
				mockRepo.EXPECT().UpdateTender(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, updated model.Tender) (model.Tender, error) {
						require.Equal(t, newTitle, updated.Title)
						return updated, nil
					})
			},
		},
		{
			name:  "stranger_is_forbidden",
			actor: model.Actor{ID: "issuer2", Role: model.RoleIssuer},
			input: UpdateInput{Title: &newTitle},
			mockSetup: func() {
				mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(stored, nil)
			},
			expectedError: tendererrors.ErrForbidden,
		},
		{
			name:  "archived_is_read_only",
			actor: owner,
			input: UpdateInput{Title: &newTitle},
			mockSetup: func() {
				archived := stored
				archived.Status = model.TenderArchived
				mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(archived, nil)
			},
			expectedError: tendererrors.ErrConflict,
		},
		{
			name:  "status_cannot_be_forced_to_archived",
			actor: owner,
			input: UpdateInput{Status: &badStatus},
			mockSetup: func() {
				mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(stored, nil)
			},
			expectedError: tendererrors.ErrValidation,
		},
		{
			name:  "missing_tender",
			actor: owner,
			input: UpdateInput{Title: &newTitle},
			mockSetup: func() {
				mockRepo.EXPECT().GetTender(gomock.Any(), "t1").
					Return(model.Tender{}, tendererrors.ErrTenderNotFound)
			},
			expectedError: tendererrors.ErrNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			got, err := service.Update(ctx, tc.actor, "t1", tc.input)

			if tc.expectedError == nil {
				require.NoError(t, err)
				require.Equal(t, newTitle, got.Title)
				return
			}
			require.ErrorIs(t, err, tc.expectedError)
		})
	}
}

// Tests Get and the sweep-before-read behavior
func TestTenderService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockProcurementDB(ctrl)
	service := NewService(mockRepo)

	ctx := context.Background()

	t.Run("read_goes_through_close_if_expired", func(t *testing.T) {
		closed := model.Tender{TenderID: "t1", Status: model.TenderClosed}
		mockRepo.EXPECT().CloseIfExpired(gomock.Any(), "t1", gomock.Any()).Return(closed, true, nil)

		got, err := service.Get(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, model.TenderClosed, got.Status)
	})

	t.Run("missing_tender", func(t *testing.T) {
		mockRepo.EXPECT().CloseIfExpired(gomock.Any(), "nope", gomock.Any()).
			Return(model.Tender{}, false, tendererrors.ErrTenderNotFound)

		_, err := service.Get(ctx, "nope")
		require.ErrorIs(t, err, tendererrors.ErrNotFound)
	})
}

// Tests List
func TestTenderService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockProcurementDB(ctrl)
	service := NewService(mockRepo)

	ctx := context.Background()

	t.Run("sweeps_expired_before_listing", func(t *testing.T) {
		mockRepo.EXPECT().ListExpiredActive(gomock.Any(), gomock.Any()).Return([]string{"t9"}, nil)
		mockRepo.EXPECT().CloseIfExpired(gomock.Any(), "t9", gomock.Any()).
			Return(model.Tender{TenderID: "t9", Status: model.TenderClosed}, true, nil)
		mockRepo.EXPECT().ListTenders(gomock.Any(), gomock.Any()).
			Return([]model.Tender{{TenderID: "t9", Status: model.TenderClosed}}, 1, nil)

		got, total, err := service.List(ctx, model.TenderFilter{})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, got, 1)
	})

	t.Run("rejects_unknown_status_filter", func(t *testing.T) {
		_, _, err := service.List(ctx, model.TenderFilter{Status: "expired"})
		require.ErrorIs(t, err, tendererrors.ErrValidation)
	})

	t.Run("sweep_failure_does_not_block_the_read", func(t *testing.T) {
		mockRepo.EXPECT().ListExpiredActive(gomock.Any(), gomock.Any()).Return(nil, errors.New("scan failed"))
		mockRepo.EXPECT().ListTenders(gomock.Any(), gomock.Any()).Return([]model.Tender{}, 0, nil)

		_, total, err := service.List(ctx, model.TenderFilter{})
		require.NoError(t, err)
		require.Equal(t, 0, total)
	})
}

// Tests Delete
func TestTenderService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockProcurementDB(ctrl)
	service := NewService(mockRepo)

	ctx := context.Background()
	stored := model.Tender{TenderID: "t1", CreatedBy: "issuer1", Status: model.TenderActive}

	t.Run("owner_deletes", func(t *testing.T) {
		mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(stored, nil)
		mockRepo.EXPECT().DeleteTenderCascade(gomock.Any(), "t1").Return(nil)

		err := service.Delete(ctx, model.Actor{ID: "issuer1", Role: model.RoleIssuer}, "t1")
		require.NoError(t, err)
	})

	t.Run("stranger_is_forbidden", func(t *testing.T) {
		mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(stored, nil)

		err := service.Delete(ctx, model.Actor{ID: "issuer2", Role: model.RoleIssuer}, "t1")
		require.ErrorIs(t, err, tendererrors.ErrForbidden)
	})

	t.Run("awarded_tender_refuses_delete", func(t *testing.T) {
		mockRepo.EXPECT().GetTender(gomock.Any(), "t1").Return(stored, nil)
		mockRepo.EXPECT().DeleteTenderCascade(gomock.Any(), "t1").Return(tendererrors.ErrAcceptedExists)

		err := service.Delete(ctx, model.Actor{ID: "issuer1", Role: model.RoleIssuer}, "t1")
		require.ErrorIs(t, err, tendererrors.ErrConflict)
	})
}
