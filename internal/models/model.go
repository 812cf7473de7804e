package models

import "time"

type (
	TenderStatus      string // lifecycle state of a tender
	ApplicationStatus string // lifecycle state of an application
	Role              string // caller role resolved by upstream auth
)

const (
	TenderDraft    TenderStatus = "draft"
	TenderActive   TenderStatus = "active"
	TenderClosed   TenderStatus = "closed"   // deadline elapsed, may still be awarded
	TenderArchived TenderStatus = "archived" // awarded, terminal

	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"

	RoleAdmin  Role = "admin"
	RoleIssuer Role = "issuer"
	RoleBidder Role = "bidder"
)

// ValidTenderStatus reports whether s is one of the four tender states.
func ValidTenderStatus(s TenderStatus) bool {
	switch s {
	case TenderDraft, TenderActive, TenderClosed, TenderArchived:
		return true
	default:
		return false
	}
}

// ValidApplicationStatus reports whether s is one of the four application states.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	default:
		return false
	}
}

// Terminal reports whether s is a sink state. Every state except pending is.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected || s == ApplicationWithdrawn
}

// ValidRole reports whether r is a known caller role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleIssuer || r == RoleBidder
}

// Actor is the authenticated caller as resolved by the upstream auth layer.
type Actor struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}

// FileAttachment is an opaque stored-file record returned by the file store.
type FileAttachment struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// Tender is a published procurement request with a submission deadline.
type Tender struct {
	TenderID      string           `json:"tender_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	BudgetMin     *float64         `json:"budget_min,omitempty"`
	BudgetMax     *float64         `json:"budget_max,omitempty"`
	Deadline      time.Time        `json:"deadline"`
	Status        TenderStatus     `json:"status"`
	IsUrgent      bool             `json:"is_urgent"`
	Tags          []string         `json:"tags,omitempty"`
	Requirements  []string         `json:"requirements,omitempty"`
	CompanyName   string           `json:"company_name"`
	ContactPerson string           `json:"contact_person,omitempty"`
	ContactEmail  string           `json:"contact_email"`
	ContactPhone  string           `json:"contact_phone,omitempty"`
	Documents     []FileAttachment `json:"documents,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Application is a bidder's submission against a tender.
type Application struct {
	ApplicationID string            `json:"application_id"`
	TenderID      string            `json:"tender_id"`
	BidderID      string            `json:"bidder_id"`
	BidderName    string            `json:"bidder_name"`
	ContactPerson string            `json:"contact_person,omitempty"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	BidAmount     float64           `json:"bid_amount"`
	Timeframe     string            `json:"timeframe,omitempty"`
	Message       string            `json:"message,omitempty"`
	Status        ApplicationStatus `json:"status"`
	Comment       string            `json:"comment,omitempty"`
	Files         []FileAttachment  `json:"files,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// EventKind identifies a domain event consumed by the notification dispatcher.
type EventKind string

const (
	EventTenderCreated            EventKind = "TenderCreated"
	EventTenderUpdated            EventKind = "TenderUpdated"
	EventTenderDeleted            EventKind = "TenderDeleted"
	EventTenderClosed             EventKind = "TenderClosed"
	EventTenderArchived           EventKind = "TenderArchived"
	EventApplicationSubmitted     EventKind = "ApplicationSubmitted"
	EventApplicationStatusChanged EventKind = "ApplicationStatusChanged"
)

// DomainEvent is an outbox entry. It carries enough denormalized data for a
// notification sink to act without re-querying the store.
type DomainEvent struct {
	EventID        string    `json:"event_id"`
	Kind           EventKind `json:"kind"`
	TenderID       string    `json:"tender_id"`
	ApplicationID  string    `json:"application_id,omitempty"`
	TenderTitle    string    `json:"tender_title"`
	RecipientID    string    `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	Status         string    `json:"status,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
	Attempts       int       `json:"attempts"`
}

// Notification is an in-app feed entry produced from a domain event.
type Notification struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// TenderFilter narrows and paginates tender listings.
type TenderFilter struct {
	Status   TenderStatus
	Category string
	Search   string
	Page     int
	Limit    int
}

// AwardResult is the outcome of a committed award cascade.
type AwardResult struct {
	Tender   Tender        `json:"tender"`
	Accepted Application   `json:"accepted"`
	Rejected []Application `json:"rejected"`
}
