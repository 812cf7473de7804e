package application

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	award "tender-tracker/internal/awardService"
	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/tendererrors"
	"tender-tracker/utils"
)

// Service is the application ledger: submission against open tenders,
// bidder withdrawal and issuer-driven status changes. Accepting an
// application is not a plain status write and is handed to the Arbitrator.
type Service struct {
	repo       repository.ProcurementDB
	arbitrator *award.Arbitrator
}

// NewService creates a new application Service instance
func NewService(repo repository.ProcurementDB, arbitrator *award.Arbitrator) *Service {
	return &Service{repo: repo, arbitrator: arbitrator}
}

// SubmitInput carries the fields accepted when submitting an application.
// BidAmount arrives as text and is parsed here so a malformed number is a
// validation error rather than a silent zero.
type SubmitInput struct {
	BidderName    string
	ContactPerson string
	Email         string
	Phone         string
	BidAmount     string
	Timeframe     string
	Message       string
	Files         []model.FileAttachment
}

// SetStatusResult reports a status change. Cascade is non-nil only when the
// change was an acceptance, which settles the whole tender.
type SetStatusResult struct {
	Application model.Application
	Cascade     *model.AwardResult
}

// Submit records a new pending application against an active tender.
func (s *Service) Submit(ctx context.Context, actor model.Actor, tenderID string, in SubmitInput) (model.Application, error) {
	now := time.Now().UTC()
	t, _, err := s.repo.CloseIfExpired(ctx, tenderID, now)
	if err != nil {
		return model.Application{}, fmt.Errorf("service: %w", err)
	}
	// The deadline is checked ahead of the status: a lagging sweep flips the
	// tender to closed on the line above, and the bidder should still see
	// the real reason their submission missed.
	if now.After(t.Deadline) {
		return model.Application{}, fmt.Errorf("service: %w", tendererrors.ErrDeadlinePassed)
	}
	if t.Status != model.TenderActive {
		return model.Application{}, fmt.Errorf("service: %w", tendererrors.ErrTenderClosed)
	}

	if in.BidderName == "" || in.Email == "" || in.Phone == "" || in.BidAmount == "" {
		return model.Application{}, fmt.Errorf("service: %w - missing required fields", tendererrors.ErrValidation)
	}
	amount, err := strconv.ParseFloat(in.BidAmount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.Application{}, fmt.Errorf("service: %w - bid_amount must be a finite number", tendererrors.ErrValidation)
	}
	if amount < 0 {
		return model.Application{}, fmt.Errorf("service: %w - bid_amount must not be negative", tendererrors.ErrValidation)
	}

	app := model.Application{
		ApplicationID: utils.GenerateID(),
		TenderID:      tenderID,
		BidderID:      actor.ID,
		BidderName:    in.BidderName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		BidAmount:     amount,
		Timeframe:     in.Timeframe,
		Message:       in.Message,
		Status:        model.ApplicationPending,
		Files:         in.Files,
		CreatedAt:     now,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return model.Application{}, fmt.Errorf("service: failed to create application: %w", err)
	}
	return app, nil
}

// Withdraw moves the bidder's own pending application to withdrawn. Bidders
// may not withdraw after the tender deadline; admins may.
func (s *Service) Withdraw(ctx context.Context, actor model.Actor, applicationID string) (model.Application, error) {
	app, err := s.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return model.Application{}, fmt.Errorf("service: %w", err)
	}
	if actor.Role != model.RoleAdmin && actor.ID != app.BidderID {
		return model.Application{}, fmt.Errorf("service: %w - not the application owner", tendererrors.ErrForbidden)
	}
	if app.Status != model.ApplicationPending {
		return model.Application{}, fmt.Errorf("service: %w", tendererrors.ErrNotPending)
	}
	if actor.Role != model.RoleAdmin {
		t, err := s.repo.GetTender(ctx, app.TenderID)
		if err != nil {
			return model.Application{}, fmt.Errorf("service: %w", err)
		}
		if time.Now().UTC().After(t.Deadline) {
			return model.Application{}, fmt.Errorf("service: %w", tendererrors.ErrDeadlinePassed)
		}
	}

	updated, err := s.repo.SetApplicationStatus(ctx, applicationID, model.ApplicationWithdrawn, "")
	if err != nil {
		return model.Application{}, fmt.Errorf("service: failed to withdraw application %s: %w", applicationID, err)
	}
	return updated, nil
}

// SetStatus applies an issuer decision to an application. Accepting triggers
// the award cascade; rejecting and withdrawing on the bidder's behalf are
// plain conditional writes.
func (s *Service) SetStatus(ctx context.Context, actor model.Actor, applicationID, status, comment string) (SetStatusResult, error) {
	app, err := s.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return SetStatusResult{}, fmt.Errorf("service: %w", err)
	}
	t, err := s.repo.GetTender(ctx, app.TenderID)
	if err != nil {
		return SetStatusResult{}, fmt.Errorf("service: %w", err)
	}
	if actor.Role != model.RoleAdmin && actor.ID != t.CreatedBy {
		return SetStatusResult{}, fmt.Errorf("service: %w - only the tender owner may decide applications", tendererrors.ErrForbidden)
	}

	switch model.ApplicationStatus(status) {
	case model.ApplicationAccepted:
		res, err := s.arbitrator.Award(ctx, actor, applicationID)
		if err != nil {
			return SetStatusResult{}, err
		}
		return SetStatusResult{Application: res.Accepted, Cascade: &res}, nil
	case model.ApplicationRejected, model.ApplicationWithdrawn:
		updated, err := s.repo.SetApplicationStatus(ctx, applicationID, model.ApplicationStatus(status), comment)
		if err != nil {
			return SetStatusResult{}, fmt.Errorf("service: failed to set application %s to %s: %w", applicationID, status, err)
		}
		return SetStatusResult{Application: updated}, nil
	default:
		return SetStatusResult{}, fmt.Errorf("service: %w - status must be 'accepted', 'rejected' or 'withdrawn'", tendererrors.ErrValidation)
	}
}

// Get returns one application. Visible to its bidder, the tender owner and
// admins only.
func (s *Service) Get(ctx context.Context, actor model.Actor, applicationID string) (model.Application, error) {
	app, err := s.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return model.Application{}, fmt.Errorf("service: %w", err)
	}
	if actor.Role == model.RoleAdmin || actor.ID == app.BidderID {
		return app, nil
	}
	t, err := s.repo.GetTender(ctx, app.TenderID)
	if err != nil {
		return model.Application{}, fmt.Errorf("service: %w", err)
	}
	if actor.ID != t.CreatedBy {
		return model.Application{}, fmt.Errorf("service: %w - no access to this application", tendererrors.ErrForbidden)
	}
	return app, nil
}

// ListMine returns the acting bidder's applications, newest first.
func (s *Service) ListMine(ctx context.Context, actor model.Actor) ([]model.Application, error) {
	apps, err := s.repo.ListApplicationsByBidder(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list applications for %s: %w", actor.ID, err)
	}
	return apps, nil
}

// ListForTender returns a tender's applications to its owner or an admin.
func (s *Service) ListForTender(ctx context.Context, actor model.Actor, tenderID string) ([]model.Application, error) {
	t, err := s.repo.GetTender(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if actor.Role != model.RoleAdmin && actor.ID != t.CreatedBy {
		return nil, fmt.Errorf("service: %w - not the tender owner", tendererrors.ErrForbidden)
	}
	apps, err := s.repo.ListApplicationsByTender(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list applications for tender %s: %w", tenderID, err)
	}
	return apps, nil
}
