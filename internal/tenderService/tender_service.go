package tender

import (
	"context"
	"fmt"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/tendererrors"
	"tender-tracker/utils"
)

// Service is the tender lifecycle manager: status-aware CRUD guards plus the
// closeIfExpired transition invoked opportunistically before reads.
type Service struct {
	repo repository.ProcurementDB
}

// NewService creates a new tender Service instance
func NewService(repo repository.ProcurementDB) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when publishing a tender.
type CreateInput struct {
	Title         string
	Description   string
	Category      string
	Deadline      string // RFC 3339
	BudgetMin     *float64
	BudgetMax     *float64
	IsUrgent      bool
	Tags          []string
	Requirements  []string
	CompanyName   string
	ContactPerson string
	ContactEmail  string
	ContactPhone  string
	Status        string // empty defaults to active; draft is the only other choice
	Documents     []model.FileAttachment
}

// UpdateInput is a patch: nil fields are left unchanged.
type UpdateInput struct {
	Title         *string
	Description   *string
	Category      *string
	Deadline      *string
	BudgetMin     *float64
	BudgetMax     *float64
	IsUrgent      *bool
	Tags          []string
	Requirements  []string
	CompanyName   *string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	Status        *string
	Documents     []model.FileAttachment
}

// BidderApplications groups one bidder's applications across an issuer's tenders.
type BidderApplications struct {
	BidderID     string              `json:"bidder_id"`
	BidderName   string              `json:"bidder_name"`
	Email        string              `json:"email"`
	Applications []model.Application `json:"applications"`
}

// Create validates and publishes a new tender owned by the acting issuer.
func (s *Service) Create(ctx context.Context, actor model.Actor, in CreateInput) (model.Tender, error) {
	if actor.Role != model.RoleIssuer && actor.Role != model.RoleAdmin {
		return model.Tender{}, fmt.Errorf("service: %w - only issuers may create tenders", tendererrors.ErrForbidden)
	}
	if in.Title == "" || in.Description == "" || in.Category == "" || in.Deadline == "" ||
		in.CompanyName == "" || in.ContactEmail == "" {
		return model.Tender{}, fmt.Errorf("service: %w - missing required fields", tendererrors.ErrValidation)
	}

	deadline, err := time.Parse(time.RFC3339, in.Deadline)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w - deadline must be an RFC 3339 timestamp", tendererrors.ErrValidation)
	}
	now := time.Now().UTC()
	if deadline.Before(now) {
		return model.Tender{}, fmt.Errorf("service: %w - deadline must not be in the past", tendererrors.ErrValidation)
	}
	if err := checkBudget(in.BudgetMin, in.BudgetMax); err != nil {
		return model.Tender{}, err
	}

	status := model.TenderActive
	if in.Status != "" {
		status = model.TenderStatus(in.Status)
		if status != model.TenderActive && status != model.TenderDraft {
			return model.Tender{}, fmt.Errorf("service: %w - status must be 'active' or 'draft'", tendererrors.ErrValidation)
		}
	}

	t := model.Tender{
		TenderID:      utils.GenerateID(),
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		BudgetMin:     in.BudgetMin,
		BudgetMax:     in.BudgetMax,
		Deadline:      deadline.UTC(),
		Status:        status,
		IsUrgent:      in.IsUrgent,
		Tags:          in.Tags,
		Requirements:  in.Requirements,
		CompanyName:   in.CompanyName,
		ContactPerson: in.ContactPerson,
		ContactEmail:  in.ContactEmail,
		ContactPhone:  in.ContactPhone,
		Documents:     in.Documents,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateTender(ctx, t); err != nil {
		return model.Tender{}, fmt.Errorf("service: failed to create tender: %w", err)
	}
	return t, nil
}

// Update applies a patch to a tender. Only the owning issuer or an admin may
// edit, and archived tenders are read-only.
func (s *Service) Update(ctx context.Context, actor model.Actor, tenderID string, in UpdateInput) (model.Tender, error) {
	t, err := s.repo.GetTender(ctx, tenderID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	if actor.Role != model.RoleAdmin && actor.ID != t.CreatedBy {
		return model.Tender{}, fmt.Errorf("service: %w - not the tender owner", tendererrors.ErrForbidden)
	}
	if t.Status == model.TenderArchived {
		return model.Tender{}, fmt.Errorf("service: %w", tendererrors.ErrArchivedReadOnly)
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *in.Deadline)
		if err != nil {
			return model.Tender{}, fmt.Errorf("service: %w - deadline must be an RFC 3339 timestamp", tendererrors.ErrValidation)
		}
		t.Deadline = deadline.UTC()
	}
	if in.BudgetMin != nil {
		t.BudgetMin = in.BudgetMin
	}
	if in.BudgetMax != nil {
		t.BudgetMax = in.BudgetMax
	}
	if err := checkBudget(t.BudgetMin, t.BudgetMax); err != nil {
		return model.Tender{}, err
	}
	if in.IsUrgent != nil {
		t.IsUrgent = *in.IsUrgent
	}
	if in.Tags != nil {
		t.Tags = in.Tags
	}
	if in.Requirements != nil {
		t.Requirements = in.Requirements
	}
	if in.CompanyName != nil {
		t.CompanyName = *in.CompanyName
	}
	if in.ContactPerson != nil {
		t.ContactPerson = *in.ContactPerson
	}
	if in.ContactEmail != nil {
		t.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		t.ContactPhone = *in.ContactPhone
	}
	if in.Documents != nil {
		t.Documents = in.Documents
	}
	if in.Status != nil {
		status := model.TenderStatus(*in.Status)
		// Archiving happens only through an award; an edit may not fake it.
		if status != model.TenderDraft && status != model.TenderActive && status != model.TenderClosed {
			return model.Tender{}, fmt.Errorf("service: %w - status must be 'draft', 'active' or 'closed'", tendererrors.ErrValidation)
		}
		t.Status = status
	}

	updated, err := s.repo.UpdateTender(ctx, t)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: failed to update tender %s: %w", tenderID, err)
	}
	return updated, nil
}

// Delete removes a tender and its applications. Refused while an accepted
// application exists.
func (s *Service) Delete(ctx context.Context, actor model.Actor, tenderID string) error {
	t, err := s.repo.GetTender(ctx, tenderID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if actor.Role != model.RoleAdmin && actor.ID != t.CreatedBy {
		return fmt.Errorf("service: %w - not the tender owner", tendererrors.ErrForbidden)
	}
	if err := s.repo.DeleteTenderCascade(ctx, tenderID); err != nil {
		return fmt.Errorf("service: failed to delete tender %s: %w", tenderID, err)
	}
	return nil
}

// Get returns a single tender, sweeping its deadline first so a stale
// active status is never observed.
func (s *Service) Get(ctx context.Context, tenderID string) (model.Tender, error) {
	t, _, err := s.repo.CloseIfExpired(ctx, tenderID, time.Now().UTC())
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	return t, nil
}

// List returns a filtered tender page after sweeping expired deadlines.
func (s *Service) List(ctx context.Context, f model.TenderFilter) ([]model.Tender, int, error) {
	if f.Status != "" && !model.ValidTenderStatus(f.Status) {
		return nil, 0, fmt.Errorf("service: %w - unsupported status filter %q", tendererrors.ErrValidation, f.Status)
	}
	s.sweepExpired(ctx)
	tenders, total, err := s.repo.ListTenders(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to list tenders: %w", err)
	}
	return tenders, total, nil
}

// ListMine returns the acting issuer's tenders, newest first.
func (s *Service) ListMine(ctx context.Context, actor model.Actor) ([]model.Tender, error) {
	s.sweepExpired(ctx)
	tenders, err := s.repo.ListTendersByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list tenders for %s: %w", actor.ID, err)
	}
	return tenders, nil
}

// CloseIfExpired applies the idempotent active-and-expired => closed
// transition and returns the tender either way.
func (s *Service) CloseIfExpired(ctx context.Context, tenderID string) (model.Tender, error) {
	t, _, err := s.repo.CloseIfExpired(ctx, tenderID, time.Now().UTC())
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	return t, nil
}

// BiddersForMyTenders groups applications to the issuer's tenders by bidder.
func (s *Service) BiddersForMyTenders(ctx context.Context, actor model.Actor) ([]BidderApplications, error) {
	tenders, err := s.repo.ListTendersByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list tenders for %s: %w", actor.ID, err)
	}

	grouped := map[string]*BidderApplications{}
	order := []string{}
	for _, t := range tenders {
		apps, err := s.repo.ListApplicationsByTender(ctx, t.TenderID)
		if err != nil {
			return nil, fmt.Errorf("service: failed to list applications for tender %s: %w", t.TenderID, err)
		}
		for _, a := range apps {
			entry, ok := grouped[a.BidderID]
			if !ok {
				entry = &BidderApplications{BidderID: a.BidderID, BidderName: a.BidderName, Email: a.Email}
				grouped[a.BidderID] = entry
				order = append(order, a.BidderID)
			}
			entry.Applications = append(entry.Applications, a)
		}
	}

	out := make([]BidderApplications, 0, len(order))
	for _, id := range order {
		out = append(out, *grouped[id])
	}
	return out, nil
}

// sweepExpired closes every expired active tender before a listing. Failures
// are logged, not surfaced: the read itself must still go through.
func (s *Service) sweepExpired(ctx context.Context) {
	now := time.Now().UTC()
	ids, err := s.repo.ListExpiredActive(ctx, now)
	if err != nil {
		utils.Warn("sweep before read failed", map[string]any{"error": err.Error()})
		return
	}
	for _, id := range ids {
		if _, _, err := s.repo.CloseIfExpired(ctx, id, now); err != nil {
			utils.Warn("sweep before read failed to close tender", map[string]any{"tender_id": id, "error": err.Error()})
		}
	}
}

func checkBudget(min, max *float64) error {
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("service: %w - budget_min must not exceed budget_max", tendererrors.ErrValidation)
	}
	return nil
}
