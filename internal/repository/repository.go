package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/tendererrors"
	"tender-tracker/utils"
)

// ProcurementDB is the storage interface for the tender system. A tender and
// its applications form one consistency domain: every method that touches
// both commits as a single atomic unit, and every status write is conditional
// on the state observed at commit time. Outbox events are appended inside the
// same unit as the mutation that produced them.
type ProcurementDB interface {
	CreateTender(ctx context.Context, t model.Tender) error
	GetTender(ctx context.Context, tenderID string) (model.Tender, error)
	ListTenders(ctx context.Context, f model.TenderFilter) ([]model.Tender, int, error)
	ListTendersByOwner(ctx context.Context, ownerID string) ([]model.Tender, error)
	UpdateTender(ctx context.Context, t model.Tender) (model.Tender, error)
	DeleteTenderCascade(ctx context.Context, tenderID string) error
	CloseIfExpired(ctx context.Context, tenderID string, now time.Time) (model.Tender, bool, error)
	ListExpiredActive(ctx context.Context, now time.Time) ([]string, error)

	CreateApplication(ctx context.Context, a model.Application) error
	GetApplication(ctx context.Context, applicationID string) (model.Application, error)
	ListApplicationsByTender(ctx context.Context, tenderID string) ([]model.Application, error)
	ListApplicationsByBidder(ctx context.Context, bidderID string) ([]model.Application, error)
	SetApplicationStatus(ctx context.Context, applicationID string, to model.ApplicationStatus, comment string) (model.Application, error)
	AwardApplication(ctx context.Context, applicationID string) (model.AwardResult, error)

	DrainEvents(ctx context.Context, limit int) ([]model.DomainEvent, error)
	RequeueEvent(ctx context.Context, ev model.DomainEvent) error

	CreateNotification(ctx context.Context, n model.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) (model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	ClearNotifications(ctx context.Context, userID string) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of ProcurementDB.
// One mutex guards the whole consistency domain, so the award cascade and the
// sweeper's compare-and-set are trivially linearizable.
type MemoryRepo struct {
	mu            sync.RWMutex
	tenders       map[string]model.Tender
	applications  map[string]model.Application
	tenderApps    map[string][]string // tenderID -> applicationIDs in creation order
	outbox        []model.DomainEvent
	notifications map[string][]model.Notification // userID -> feed, newest appended last
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tenders:       make(map[string]model.Tender),
		applications:  make(map[string]model.Application),
		tenderApps:    make(map[string][]string),
		notifications: make(map[string][]model.Notification),
	}
}

// appendEvent must be called with r.mu held for writing.
func (r *MemoryRepo) appendEvent(ev model.DomainEvent) {
	ev.EventID = utils.GenerateEventID()
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	r.outbox = append(r.outbox, ev)
}

// CreateTender stores a new tender and queues a TenderCreated event.
func (r *MemoryRepo) CreateTender(_ context.Context, t model.Tender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tenders[t.TenderID]; ok {
		return fmt.Errorf("create tender %s: %w: id already exists", t.TenderID, tendererrors.ErrConflict)
	}
	r.tenders[t.TenderID] = t
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventTenderCreated,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(t.Status),
	})
	return nil
}

// GetTender returns a tender by id.
func (r *MemoryRepo) GetTender(_ context.Context, tenderID string) (model.Tender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tenders[tenderID]
	if !ok {
		return model.Tender{}, fmt.Errorf("get tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	return t, nil
}

// ListTenders returns a filtered page ordered by creation time descending,
// plus the total match count.
func (r *MemoryRepo) ListTenders(_ context.Context, f model.TenderFilter) ([]model.Tender, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]model.Tender, 0, len(r.tenders))
	needle := strings.ToLower(f.Search)
	for _, t := range r.tenders {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		matched = append(matched, t)
	}
	sortTendersNewestFirst(matched)

	total := len(matched)
	page, limit := normalizePage(f.Page, f.Limit)
	start := (page - 1) * limit
	if start >= total {
		return []model.Tender{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// ListTendersByOwner returns every tender created by ownerID, newest first.
func (r *MemoryRepo) ListTendersByOwner(_ context.Context, ownerID string) ([]model.Tender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Tender{}
	for _, t := range r.tenders {
		if t.CreatedBy == ownerID {
			out = append(out, t)
		}
	}
	sortTendersNewestFirst(out)
	return out, nil
}

// UpdateTender replaces a tender's mutable fields. Archived tenders are
// read-only; the check happens here, against the stored row, so a racing
// award cannot be overwritten.
func (r *MemoryRepo) UpdateTender(_ context.Context, t model.Tender) (model.Tender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tenders[t.TenderID]
	if !ok {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.TenderID, tendererrors.ErrTenderNotFound)
	}
	if stored.Status == model.TenderArchived {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.TenderID, tendererrors.ErrArchivedReadOnly)
	}
	t.CreatedBy = stored.CreatedBy
	t.CreatedAt = stored.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	r.tenders[t.TenderID] = t
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventTenderUpdated,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(t.Status),
	})
	return t, nil
}

// DeleteTenderCascade removes a tender and all of its applications. Refused
// when any application is accepted: deleting an awarded relationship would
// silently lose it.
func (r *MemoryRepo) DeleteTenderCascade(_ context.Context, tenderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[tenderID]
	if !ok {
		return fmt.Errorf("delete tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	for _, appID := range r.tenderApps[tenderID] {
		if r.applications[appID].Status == model.ApplicationAccepted {
			return fmt.Errorf("delete tender %s: %w", tenderID, tendererrors.ErrAcceptedExists)
		}
	}
	for _, appID := range r.tenderApps[tenderID] {
		delete(r.applications, appID)
	}
	delete(r.tenderApps, tenderID)
	delete(r.tenders, tenderID)
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventTenderDeleted,
		TenderID:       tenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
	})
	return nil
}

// CloseIfExpired flips an active tender with an elapsed deadline to closed.
// The flip is a compare-and-set: any other status is left untouched and the
// TenderClosed event fires only on the winning flip, so overlapping sweeps
// cannot double-fire.
func (r *MemoryRepo) CloseIfExpired(_ context.Context, tenderID string, now time.Time) (model.Tender, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[tenderID]
	if !ok {
		return model.Tender{}, false, fmt.Errorf("close tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	if t.Status != model.TenderActive || t.Deadline.After(now) {
		return t, false, nil
	}
	t.Status = model.TenderClosed
	t.UpdatedAt = now.UTC()
	r.tenders[tenderID] = t
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventTenderClosed,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(model.TenderClosed),
	})
	return t, true, nil
}

// ListExpiredActive returns ids of active tenders whose deadline has elapsed.
func (r *MemoryRepo) ListExpiredActive(_ context.Context, now time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := []string{}
	for id, t := range r.tenders {
		if t.Status == model.TenderActive && !t.Deadline.After(now) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// CreateApplication appends an application to its tender's set and queues an
// ApplicationSubmitted event for the tender owner.
func (r *MemoryRepo) CreateApplication(_ context.Context, a model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[a.TenderID]
	if !ok {
		return fmt.Errorf("create application for tender %s: %w", a.TenderID, tendererrors.ErrTenderNotFound)
	}
	if _, ok := r.applications[a.ApplicationID]; ok {
		return fmt.Errorf("create application %s: %w: id already exists", a.ApplicationID, tendererrors.ErrConflict)
	}
	r.applications[a.ApplicationID] = a
	r.tenderApps[a.TenderID] = append(r.tenderApps[a.TenderID], a.ApplicationID)
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventApplicationSubmitted,
		TenderID:       t.TenderID,
		ApplicationID:  a.ApplicationID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(a.Status),
	})
	return nil
}

// GetApplication returns an application by id.
func (r *MemoryRepo) GetApplication(_ context.Context, applicationID string) (model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.applications[applicationID]
	if !ok {
		return model.Application{}, fmt.Errorf("get application %s: %w", applicationID, tendererrors.ErrApplicationNotFound)
	}
	return a, nil
}

// ListApplicationsByTender returns a tender's applications, newest first.
func (r *MemoryRepo) ListApplicationsByTender(_ context.Context, tenderID string) ([]model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.tenders[tenderID]; !ok {
		return nil, fmt.Errorf("list applications for tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	ids := r.tenderApps[tenderID]
	out := make([]model.Application, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.applications[ids[i]])
	}
	return out, nil
}

// ListApplicationsByBidder returns every application submitted by bidderID,
// newest first.
func (r *MemoryRepo) ListApplicationsByBidder(_ context.Context, bidderID string) ([]model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Application{}
	for _, a := range r.applications {
		if a.BidderID == bidderID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ApplicationID < out[j].ApplicationID
	})
	return out, nil
}

// SetApplicationStatus moves a pending application into a terminal state.
// The pending check happens at commit time: a request against an application
// that already left pending fails instead of overwriting.
func (r *MemoryRepo) SetApplicationStatus(_ context.Context, applicationID string, to model.ApplicationStatus, comment string) (model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[applicationID]
	if !ok {
		return model.Application{}, fmt.Errorf("set status of application %s: %w", applicationID, tendererrors.ErrApplicationNotFound)
	}
	if a.Status != model.ApplicationPending {
		return model.Application{}, fmt.Errorf("set status of application %s: %w", applicationID, tendererrors.ErrNotPending)
	}
	if !to.Terminal() {
		return model.Application{}, fmt.Errorf("set status of application %s to %q: %w", applicationID, to, tendererrors.ErrValidation)
	}
	a.Status = to
	if comment != "" {
		a.Comment = comment
	}
	r.applications[applicationID] = a

	t := r.tenders[a.TenderID]
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventApplicationStatusChanged,
		TenderID:       a.TenderID,
		ApplicationID:  a.ApplicationID,
		TenderTitle:    t.Title,
		RecipientID:    a.BidderID,
		RecipientEmail: a.Email,
		Status:         string(to),
		Comment:        comment,
	})
	return a, nil
}

// AwardApplication commits the award cascade as one critical section:
// accept the application, archive its tender, reject every other pending
// application, and queue one event per change. Racing awards on the same
// tender serialize here; the loser observes the archived tender or the
// no-longer-pending application and fails with a conflict.
func (r *MemoryRepo) AwardApplication(_ context.Context, applicationID string) (model.AwardResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[applicationID]
	if !ok {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrApplicationNotFound)
	}
	t, ok := r.tenders[a.TenderID]
	if !ok {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrTenderNotFound)
	}
	if t.Status == model.TenderArchived {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrTenderArchived)
	}
	if a.Status != model.ApplicationPending {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrNotPending)
	}

	a.Status = model.ApplicationAccepted
	r.applications[applicationID] = a
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventApplicationStatusChanged,
		TenderID:       t.TenderID,
		ApplicationID:  a.ApplicationID,
		TenderTitle:    t.Title,
		RecipientID:    a.BidderID,
		RecipientEmail: a.Email,
		Status:         string(model.ApplicationAccepted),
	})

	t.Status = model.TenderArchived
	t.UpdatedAt = time.Now().UTC()
	r.tenders[t.TenderID] = t
	r.appendEvent(model.DomainEvent{
		Kind:           model.EventTenderArchived,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(model.TenderArchived),
	})

	rejected := []model.Application{}
	for _, otherID := range r.tenderApps[t.TenderID] {
		other := r.applications[otherID]
		if otherID == applicationID || other.Status != model.ApplicationPending {
			continue
		}
		other.Status = model.ApplicationRejected
		r.applications[otherID] = other
		rejected = append(rejected, other)
		r.appendEvent(model.DomainEvent{
			Kind:           model.EventApplicationStatusChanged,
			TenderID:       t.TenderID,
			ApplicationID:  other.ApplicationID,
			TenderTitle:    t.Title,
			RecipientID:    other.BidderID,
			RecipientEmail: other.Email,
			Status:         string(model.ApplicationRejected),
		})
	}

	return model.AwardResult{Tender: t, Accepted: a, Rejected: rejected}, nil
}

// DrainEvents removes and returns up to limit queued events, oldest first.
func (r *MemoryRepo) DrainEvents(_ context.Context, limit int) ([]model.DomainEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.outbox) {
		limit = len(r.outbox)
	}
	if limit == 0 {
		return nil, nil
	}
	drained := append([]model.DomainEvent(nil), r.outbox[:limit]...)
	r.outbox = append([]model.DomainEvent(nil), r.outbox[limit:]...)
	return drained, nil
}

// RequeueEvent puts a failed event back at the tail of the outbox.
func (r *MemoryRepo) RequeueEvent(_ context.Context, ev model.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outbox = append(r.outbox, ev)
	return nil
}

// CreateNotification appends an entry to a user's in-app feed.
func (r *MemoryRepo) CreateNotification(_ context.Context, n model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications[n.UserID] = append(r.notifications[n.UserID], n)
	return nil
}

// ListNotificationsByUser returns a user's feed, newest first.
func (r *MemoryRepo) ListNotificationsByUser(_ context.Context, userID string) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feed := r.notifications[userID]
	out := make([]model.Notification, 0, len(feed))
	for i := len(feed) - 1; i >= 0; i-- {
		out = append(out, feed[i])
	}
	return out, nil
}

// MarkNotificationRead flags a single feed entry as read.
func (r *MemoryRepo) MarkNotificationRead(_ context.Context, notificationID, userID string) (model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feed := r.notifications[userID]
	for i, n := range feed {
		if n.NotificationID == notificationID {
			feed[i].IsRead = true
			return feed[i], nil
		}
	}
	return model.Notification{}, fmt.Errorf("mark notification %s: %w", notificationID, tendererrors.ErrNotFound)
}

// MarkAllNotificationsRead flags a user's whole feed as read.
func (r *MemoryRepo) MarkAllNotificationsRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feed := r.notifications[userID]
	for i := range feed {
		feed[i].IsRead = true
	}
	return nil
}

// ClearNotifications drops a user's whole feed.
func (r *MemoryRepo) ClearNotifications(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.notifications, userID)
	return nil
}

// AddTender seeds a tender without queueing events. Intended for tests.
func (r *MemoryRepo) AddTender(t model.Tender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenders[t.TenderID] = t
}

// AddApplication seeds an application without queueing events. Intended for tests.
func (r *MemoryRepo) AddApplication(a model.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[a.ApplicationID] = a
	r.tenderApps[a.TenderID] = append(r.tenderApps[a.TenderID], a.ApplicationID)
}

func sortTendersNewestFirst(ts []model.Tender) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		}
		return ts[i].TenderID < ts[j].TenderID
	})
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
