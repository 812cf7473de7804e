package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/tendererrors"
	"tender-tracker/utils"
)

// PostgresRepo is the durable implementation of ProcurementDB. The award
// cascade and every conditional status write run inside a transaction that
// takes a row lock on the tender, so per-tender mutations serialize exactly
// like they do behind the memory repo's mutex. Outbox rows are written in the
// same transaction as the state change.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo creates a repository backed by the given connection pool.
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

const tenderColumns = `id, title, description, category, budget_min, budget_max, deadline, status,
	is_urgent, tags, requirements, company_name, contact_person, contact_email, contact_phone,
	documents, created_by, created_at, updated_at`

const applicationColumns = `id, tender_id, bidder_id, bidder_name, contact_person, email, phone,
	bid_amount, timeframe, message, status, comment, files, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTender(row rowScanner) (model.Tender, error) {
	var t model.Tender
	var docs []byte
	err := row.Scan(&t.TenderID, &t.Title, &t.Description, &t.Category, &t.BudgetMin, &t.BudgetMax,
		&t.Deadline, &t.Status, &t.IsUrgent, &t.Tags, &t.Requirements, &t.CompanyName,
		&t.ContactPerson, &t.ContactEmail, &t.ContactPhone, &docs, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Tender{}, err
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &t.Documents); err != nil {
			return model.Tender{}, fmt.Errorf("decode tender documents: %w", err)
		}
	}
	return t, nil
}

func scanApplication(row rowScanner) (model.Application, error) {
	var a model.Application
	var files []byte
	err := row.Scan(&a.ApplicationID, &a.TenderID, &a.BidderID, &a.BidderName, &a.ContactPerson,
		&a.Email, &a.Phone, &a.BidAmount, &a.Timeframe, &a.Message, &a.Status, &a.Comment,
		&files, &a.CreatedAt)
	if err != nil {
		return model.Application{}, err
	}
	if len(files) > 0 {
		if err := json.Unmarshal(files, &a.Files); err != nil {
			return model.Application{}, fmt.Errorf("decode application files: %w", err)
		}
	}
	return a, nil
}

func encodeAttachments(files []model.FileAttachment) (string, error) {
	if files == nil {
		files = []model.FileAttachment{}
	}
	raw, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("encode attachments: %w", err)
	}
	return string(raw), nil
}

func insertEvent(ctx context.Context, tx pgx.Tx, ev model.DomainEvent) error {
	if ev.EventID == "" {
		ev.EventID = utils.GenerateEventID()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO outbox_events (event_id, kind, tender_id, application_id, tender_title,
			recipient_id, recipient_email, status, comment, occurred_at, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		ev.EventID, ev.Kind, ev.TenderID, ev.ApplicationID, ev.TenderTitle,
		ev.RecipientID, ev.RecipientEmail, ev.Status, ev.Comment, ev.OccurredAt, ev.Attempts)
	return err
}

// CreateTender stores a new tender and queues a TenderCreated event.
func (r *PostgresRepo) CreateTender(ctx context.Context, t model.Tender) error {
	docs, err := encodeAttachments(t.Documents)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create tender: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tenders (`+tenderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		t.TenderID, t.Title, t.Description, t.Category, t.BudgetMin, t.BudgetMax, t.Deadline, t.Status,
		t.IsUrgent, t.Tags, t.Requirements, t.CompanyName, t.ContactPerson, t.ContactEmail, t.ContactPhone,
		docs, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tender %s: %w", t.TenderID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventTenderCreated,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(t.Status),
	})
	if err != nil {
		return fmt.Errorf("queue tender created event: %w", err)
	}
	return tx.Commit(ctx)
}

// GetTender returns a tender by id.
func (r *PostgresRepo) GetTender(ctx context.Context, tenderID string) (model.Tender, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, tenderID)
	t, err := scanTender(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tender{}, fmt.Errorf("get tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	if err != nil {
		return model.Tender{}, fmt.Errorf("get tender %s: %w", tenderID, err)
	}
	return t, nil
}

// ListTenders returns a filtered page ordered by creation time descending,
// plus the total match count.
func (r *PostgresRepo) ListTenders(ctx context.Context, f model.TenderFilter) ([]model.Tender, int, error) {
	page, limit := normalizePage(f.Page, f.Limit)
	where := ` WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR category = $2)
		AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')`

	var total int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tenders`+where,
		string(f.Status), f.Category, f.Search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count tenders: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+tenderColumns+` FROM tenders`+where+`
		ORDER BY created_at DESC, id LIMIT $4 OFFSET $5`,
		string(f.Status), f.Category, f.Search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	out := []model.Tender{}
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tender: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// ListTendersByOwner returns every tender created by ownerID, newest first.
func (r *PostgresRepo) ListTendersByOwner(ctx context.Context, ownerID string) ([]model.Tender, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tenderColumns+` FROM tenders
		WHERE created_by = $1 ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tenders by owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	out := []model.Tender{}
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tender: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTender replaces a tender's mutable fields; archived tenders are
// read-only. The row lock makes the archived check race-safe against awards.
func (r *PostgresRepo) UpdateTender(ctx context.Context, t model.Tender) (model.Tender, error) {
	docs, err := encodeAttachments(t.Documents)
	if err != nil {
		return model.Tender{}, err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Tender{}, fmt.Errorf("begin update tender: %w", err)
	}
	defer tx.Rollback(ctx)

	var status model.TenderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM tenders WHERE id = $1 FOR UPDATE`, t.TenderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.TenderID, tendererrors.ErrTenderNotFound)
	}
	if err != nil {
		return model.Tender{}, fmt.Errorf("lock tender %s: %w", t.TenderID, err)
	}
	if status == model.TenderArchived {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.TenderID, tendererrors.ErrArchivedReadOnly)
	}

	row := tx.QueryRow(ctx, `
		UPDATE tenders SET title = $2, description = $3, category = $4, budget_min = $5,
			budget_max = $6, deadline = $7, status = $8, is_urgent = $9, tags = $10,
			requirements = $11, company_name = $12, contact_person = $13, contact_email = $14,
			contact_phone = $15, documents = $16, updated_at = now()
		WHERE id = $1
		RETURNING `+tenderColumns,
		t.TenderID, t.Title, t.Description, t.Category, t.BudgetMin, t.BudgetMax, t.Deadline,
		t.Status, t.IsUrgent, t.Tags, t.Requirements, t.CompanyName, t.ContactPerson,
		t.ContactEmail, t.ContactPhone, docs)
	updated, err := scanTender(row)
	if err != nil {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.TenderID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventTenderUpdated,
		TenderID:       updated.TenderID,
		TenderTitle:    updated.Title,
		RecipientID:    updated.CreatedBy,
		RecipientEmail: updated.ContactEmail,
		Status:         string(updated.Status),
	})
	if err != nil {
		return model.Tender{}, fmt.Errorf("queue tender updated event: %w", err)
	}
	return updated, tx.Commit(ctx)
}

// DeleteTenderCascade removes a tender and its applications unless one of
// them is accepted.
func (r *PostgresRepo) DeleteTenderCascade(ctx context.Context, tenderID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete tender: %w", err)
	}
	defer tx.Rollback(ctx)

	var title, createdBy, contactEmail string
	err = tx.QueryRow(ctx, `SELECT title, created_by, contact_email FROM tenders WHERE id = $1 FOR UPDATE`,
		tenderID).Scan(&title, &createdBy, &contactEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("delete tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock tender %s: %w", tenderID, err)
	}

	var accepted bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE tender_id = $1 AND status = $2)`,
		tenderID, model.ApplicationAccepted).Scan(&accepted)
	if err != nil {
		return fmt.Errorf("check accepted applications for tender %s: %w", tenderID, err)
	}
	if accepted {
		return fmt.Errorf("delete tender %s: %w", tenderID, tendererrors.ErrAcceptedExists)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM applications WHERE tender_id = $1`, tenderID); err != nil {
		return fmt.Errorf("delete applications for tender %s: %w", tenderID, err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM tenders WHERE id = $1`, tenderID); err != nil {
		return fmt.Errorf("delete tender %s: %w", tenderID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventTenderDeleted,
		TenderID:       tenderID,
		TenderTitle:    title,
		RecipientID:    createdBy,
		RecipientEmail: contactEmail,
	})
	if err != nil {
		return fmt.Errorf("queue tender deleted event: %w", err)
	}
	return tx.Commit(ctx)
}

// CloseIfExpired flips an active tender with an elapsed deadline to closed.
// The UPDATE predicate is the compare-and-set; the event is written only when
// a row actually flipped.
func (r *PostgresRepo) CloseIfExpired(ctx context.Context, tenderID string, now time.Time) (model.Tender, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Tender{}, false, fmt.Errorf("begin close tender: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE tenders SET status = $3, updated_at = $2
		WHERE id = $1 AND status = $4 AND deadline <= $2
		RETURNING `+tenderColumns,
		tenderID, now.UTC(), model.TenderClosed, model.TenderActive)
	t, err := scanTender(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Nothing flipped: either absent or not an expired active tender.
		t, err = r.GetTender(ctx, tenderID)
		if err != nil {
			return model.Tender{}, false, err
		}
		return t, false, nil
	}
	if err != nil {
		return model.Tender{}, false, fmt.Errorf("close tender %s: %w", tenderID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventTenderClosed,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(model.TenderClosed),
	})
	if err != nil {
		return model.Tender{}, false, fmt.Errorf("queue tender closed event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Tender{}, false, fmt.Errorf("commit close tender %s: %w", tenderID, err)
	}
	return t, true, nil
}

// ListExpiredActive returns ids of active tenders whose deadline has elapsed.
func (r *PostgresRepo) ListExpiredActive(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM tenders WHERE status = $1 AND deadline <= $2 ORDER BY id`,
		model.TenderActive, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("list expired tenders: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tender id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateApplication appends an application to its tender's set and queues an
// ApplicationSubmitted event for the tender owner.
func (r *PostgresRepo) CreateApplication(ctx context.Context, a model.Application) error {
	files, err := encodeAttachments(a.Files)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create application: %w", err)
	}
	defer tx.Rollback(ctx)

	var title, createdBy, contactEmail string
	err = tx.QueryRow(ctx, `SELECT title, created_by, contact_email FROM tenders WHERE id = $1`,
		a.TenderID).Scan(&title, &createdBy, &contactEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("create application for tender %s: %w", a.TenderID, tendererrors.ErrTenderNotFound)
	}
	if err != nil {
		return fmt.Errorf("load tender %s: %w", a.TenderID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ApplicationID, a.TenderID, a.BidderID, a.BidderName, a.ContactPerson, a.Email, a.Phone,
		a.BidAmount, a.Timeframe, a.Message, a.Status, a.Comment, files, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert application %s: %w", a.ApplicationID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventApplicationSubmitted,
		TenderID:       a.TenderID,
		ApplicationID:  a.ApplicationID,
		TenderTitle:    title,
		RecipientID:    createdBy,
		RecipientEmail: contactEmail,
		Status:         string(a.Status),
	})
	if err != nil {
		return fmt.Errorf("queue application submitted event: %w", err)
	}
	return tx.Commit(ctx)
}

// GetApplication returns an application by id.
func (r *PostgresRepo) GetApplication(ctx context.Context, applicationID string) (model.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID)
	a, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Application{}, fmt.Errorf("get application %s: %w", applicationID, tendererrors.ErrApplicationNotFound)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("get application %s: %w", applicationID, err)
	}
	return a, nil
}

func (r *PostgresRepo) listApplications(ctx context.Context, query, arg string) ([]model.Application, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListApplicationsByTender returns a tender's applications, newest first.
func (r *PostgresRepo) ListApplicationsByTender(ctx context.Context, tenderID string) ([]model.Application, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tenders WHERE id = $1)`, tenderID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check tender %s: %w", tenderID, err)
	}
	if !exists {
		return nil, fmt.Errorf("list applications for tender %s: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	apps, err := r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE tender_id = $1 ORDER BY created_at DESC, id`, tenderID)
	if err != nil {
		return nil, fmt.Errorf("list applications for tender %s: %w", tenderID, err)
	}
	return apps, nil
}

// ListApplicationsByBidder returns every application submitted by bidderID,
// newest first.
func (r *PostgresRepo) ListApplicationsByBidder(ctx context.Context, bidderID string) ([]model.Application, error) {
	apps, err := r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE bidder_id = $1 ORDER BY created_at DESC, id`, bidderID)
	if err != nil {
		return nil, fmt.Errorf("list applications for bidder %s: %w", bidderID, err)
	}
	return apps, nil
}

// SetApplicationStatus moves a pending application into a terminal state.
// The status predicate on the UPDATE is the commit-time pending check.
func (r *PostgresRepo) SetApplicationStatus(ctx context.Context, applicationID string, to model.ApplicationStatus, comment string) (model.Application, error) {
	if !to.Terminal() {
		return model.Application{}, fmt.Errorf("set status of application %s to %q: %w", applicationID, to, tendererrors.ErrValidation)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Application{}, fmt.Errorf("begin set application status: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE applications SET status = $2, comment = CASE WHEN $3 = '' THEN comment ELSE $3 END
		WHERE id = $1 AND status = $4
		RETURNING `+applicationColumns,
		applicationID, to, comment, model.ApplicationPending)
	a, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetApplication(ctx, applicationID); getErr != nil {
			return model.Application{}, getErr
		}
		return model.Application{}, fmt.Errorf("set status of application %s: %w", applicationID, tendererrors.ErrNotPending)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("set status of application %s: %w", applicationID, err)
	}

	var title string
	if err := tx.QueryRow(ctx, `SELECT title FROM tenders WHERE id = $1`, a.TenderID).Scan(&title); err != nil {
		return model.Application{}, fmt.Errorf("load tender %s: %w", a.TenderID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventApplicationStatusChanged,
		TenderID:       a.TenderID,
		ApplicationID:  a.ApplicationID,
		TenderTitle:    title,
		RecipientID:    a.BidderID,
		RecipientEmail: a.Email,
		Status:         string(to),
		Comment:        comment,
	})
	if err != nil {
		return model.Application{}, fmt.Errorf("queue status changed event: %w", err)
	}
	return a, tx.Commit(ctx)
}

// AwardApplication commits the award cascade in one transaction. The FOR
// UPDATE lock on the tender row serializes racing awards; the loser re-reads
// an archived tender or a non-pending application and gets a conflict.
func (r *PostgresRepo) AwardApplication(ctx context.Context, applicationID string) (model.AwardResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("begin award: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID)
	a, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrApplicationNotFound)
	}
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, err)
	}

	row = tx.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1 FOR UPDATE`, a.TenderID)
	t, err := scanTender(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrTenderNotFound)
	}
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("lock tender %s: %w", a.TenderID, err)
	}
	if t.Status == model.TenderArchived {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrTenderArchived)
	}

	// Re-read under the tender lock: a racing award may have rejected it.
	row = tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID)
	if a, err = scanApplication(row); err != nil {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, err)
	}
	if a.Status != model.ApplicationPending {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrNotPending)
	}

	// The predicate is the commit-time pending check. The tender lock does not
	// cover SetApplicationStatus, so a withdrawal may commit between the
	// re-read above and this write; it must not be overwritten.
	row = tx.QueryRow(ctx, `UPDATE applications SET status = $2 WHERE id = $1 AND status = $3 RETURNING `+applicationColumns,
		applicationID, model.ApplicationAccepted, model.ApplicationPending)
	a, err = scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AwardResult{}, fmt.Errorf("award application %s: %w", applicationID, tendererrors.ErrNotPending)
	}
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("accept application %s: %w", applicationID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventApplicationStatusChanged,
		TenderID:       t.TenderID,
		ApplicationID:  a.ApplicationID,
		TenderTitle:    t.Title,
		RecipientID:    a.BidderID,
		RecipientEmail: a.Email,
		Status:         string(model.ApplicationAccepted),
	})
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("queue acceptance event: %w", err)
	}

	row = tx.QueryRow(ctx, `UPDATE tenders SET status = $2, updated_at = now() WHERE id = $1 RETURNING `+tenderColumns,
		t.TenderID, model.TenderArchived)
	if t, err = scanTender(row); err != nil {
		return model.AwardResult{}, fmt.Errorf("archive tender %s: %w", t.TenderID, err)
	}
	err = insertEvent(ctx, tx, model.DomainEvent{
		Kind:           model.EventTenderArchived,
		TenderID:       t.TenderID,
		TenderTitle:    t.Title,
		RecipientID:    t.CreatedBy,
		RecipientEmail: t.ContactEmail,
		Status:         string(model.TenderArchived),
	})
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("queue archive event: %w", err)
	}

	rows, err := tx.Query(ctx, `
		UPDATE applications SET status = $3
		WHERE tender_id = $1 AND id <> $2 AND status = $4
		RETURNING `+applicationColumns,
		t.TenderID, applicationID, model.ApplicationRejected, model.ApplicationPending)
	if err != nil {
		return model.AwardResult{}, fmt.Errorf("reject competitors for tender %s: %w", t.TenderID, err)
	}
	rejected := []model.Application{}
	for rows.Next() {
		other, err := scanApplication(rows)
		if err != nil {
			rows.Close()
			return model.AwardResult{}, fmt.Errorf("scan rejected application: %w", err)
		}
		rejected = append(rejected, other)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return model.AwardResult{}, fmt.Errorf("reject competitors for tender %s: %w", t.TenderID, err)
	}
	for _, other := range rejected {
		err = insertEvent(ctx, tx, model.DomainEvent{
			Kind:           model.EventApplicationStatusChanged,
			TenderID:       t.TenderID,
			ApplicationID:  other.ApplicationID,
			TenderTitle:    t.Title,
			RecipientID:    other.BidderID,
			RecipientEmail: other.Email,
			Status:         string(model.ApplicationRejected),
		})
		if err != nil {
			return model.AwardResult{}, fmt.Errorf("queue rejection event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.AwardResult{}, fmt.Errorf("commit award for tender %s: %w", t.TenderID, err)
	}
	return model.AwardResult{Tender: t, Accepted: a, Rejected: rejected}, nil
}

// DrainEvents removes and returns up to limit queued events, oldest first.
// SKIP LOCKED lets concurrent dispatchers drain disjoint batches.
func (r *PostgresRepo) DrainEvents(ctx context.Context, limit int) ([]model.DomainEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		DELETE FROM outbox_events WHERE id IN (
			SELECT id FROM outbox_events ORDER BY id LIMIT $1 FOR UPDATE SKIP LOCKED
		)
		RETURNING event_id, kind, tender_id, application_id, tender_title,
			recipient_id, recipient_email, status, comment, occurred_at, attempts`, limit)
	if err != nil {
		return nil, fmt.Errorf("drain events: %w", err)
	}
	defer rows.Close()

	out := []model.DomainEvent{}
	for rows.Next() {
		var ev model.DomainEvent
		err := rows.Scan(&ev.EventID, &ev.Kind, &ev.TenderID, &ev.ApplicationID, &ev.TenderTitle,
			&ev.RecipientID, &ev.RecipientEmail, &ev.Status, &ev.Comment, &ev.OccurredAt, &ev.Attempts)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// RequeueEvent puts a failed event back at the tail of the outbox.
func (r *PostgresRepo) RequeueEvent(ctx context.Context, ev model.DomainEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO outbox_events (event_id, kind, tender_id, application_id, tender_title,
			recipient_id, recipient_email, status, comment, occurred_at, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		ev.EventID, ev.Kind, ev.TenderID, ev.ApplicationID, ev.TenderTitle,
		ev.RecipientID, ev.RecipientEmail, ev.Status, ev.Comment, ev.OccurredAt, ev.Attempts)
	if err != nil {
		return fmt.Errorf("requeue event %s: %w", ev.EventID, err)
	}
	return nil
}

// CreateNotification appends an entry to a user's in-app feed.
func (r *PostgresRepo) CreateNotification(ctx context.Context, n model.Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.NotificationID, n.UserID, n.Type, n.Title, n.Body, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification %s: %w", n.NotificationID, err)
	}
	return nil
}

// ListNotificationsByUser returns a user's feed, newest first.
func (r *PostgresRepo) ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, title, body, is_read, created_at FROM notifications
		WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.NotificationID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationRead flags a single feed entry as read.
func (r *PostgresRepo) MarkNotificationRead(ctx context.Context, notificationID, userID string) (model.Notification, error) {
	var n model.Notification
	err := r.pool.QueryRow(ctx, `
		UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, type, title, body, is_read, created_at`,
		notificationID, userID).
		Scan(&n.NotificationID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Notification{}, fmt.Errorf("mark notification %s: %w", notificationID, tendererrors.ErrNotFound)
	}
	if err != nil {
		return model.Notification{}, fmt.Errorf("mark notification %s: %w", notificationID, err)
	}
	return n, nil
}

// MarkAllNotificationsRead flags a user's whole feed as read.
func (r *PostgresRepo) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("mark all notifications for user %s: %w", userID, err)
	}
	return nil
}

// ClearNotifications drops a user's whole feed.
func (r *PostgresRepo) ClearNotifications(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear notifications for user %s: %w", userID, err)
	}
	return nil
}
