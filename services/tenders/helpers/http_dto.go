package helpers

import model "tender-tracker/internal/models"

// Request/Response DTOs
type CreateTenderRequest struct {
	Title         string                 `json:"title" binding:"required"`
	Description   string                 `json:"description" binding:"required"`
	Category      string                 `json:"category" binding:"required"`
	Deadline      string                 `json:"deadline" binding:"required"`
	BudgetMin     *float64               `json:"budget_min"`
	BudgetMax     *float64               `json:"budget_max"`
	IsUrgent      bool                   `json:"is_urgent"`
	Tags          []string               `json:"tags"`
	Requirements  []string               `json:"requirements"`
	CompanyName   string                 `json:"company_name" binding:"required"`
	ContactPerson string                 `json:"contact_person"`
	ContactEmail  string                 `json:"contact_email" binding:"required,email"`
	ContactPhone  string                 `json:"contact_phone"`
	Status        string                 `json:"status"`
	Documents     []model.FileAttachment `json:"documents"`
}

type UpdateTenderRequest struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Category      *string                `json:"category"`
	Deadline      *string                `json:"deadline"`
	BudgetMin     *float64               `json:"budget_min"`
	BudgetMax     *float64               `json:"budget_max"`
	IsUrgent      *bool                  `json:"is_urgent"`
	Tags          []string               `json:"tags"`
	Requirements  []string               `json:"requirements"`
	CompanyName   *string                `json:"company_name"`
	ContactPerson *string                `json:"contact_person"`
	ContactEmail  *string                `json:"contact_email"`
	ContactPhone  *string                `json:"contact_phone"`
	Status        *string                `json:"status"`
	Documents     []model.FileAttachment `json:"documents"`
}

// SubmitApplicationRequest carries bid_amount as a string so the service can
// reject non-finite values instead of binding them to a float silently.
type SubmitApplicationRequest struct {
	BidderName    string                 `json:"bidder_name" binding:"required"`
	ContactPerson string                 `json:"contact_person"`
	Email         string                 `json:"email" binding:"required,email"`
	Phone         string                 `json:"phone" binding:"required"`
	BidAmount     string                 `json:"bid_amount" binding:"required"`
	Timeframe     string                 `json:"timeframe"`
	Message       string                 `json:"message"`
	Files         []model.FileAttachment `json:"files"`
}

type SetApplicationStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type TenderListResponse struct {
	Tenders []model.Tender `json:"tenders"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// AwardResponse reports the outcome of accepting an application: the
// settled tender, the winner and how many competitors were rejected.
type AwardResponse struct {
	Tender        model.Tender      `json:"tender"`
	Accepted      model.Application `json:"accepted"`
	RejectedCount int               `json:"rejected_count"`
}
