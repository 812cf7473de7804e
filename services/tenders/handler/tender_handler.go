package handler

import (
	"context"
	"fmt"
	"net/http"

	model "tender-tracker/internal/models"
	tender "tender-tracker/internal/tenderService"
	"tender-tracker/services/tenders/helpers"
	"tender-tracker/utils"

	"github.com/gin-gonic/gin"
)

type TenderServiceInterface interface {
	Create(ctx context.Context, actor model.Actor, in tender.CreateInput) (model.Tender, error)
	Update(ctx context.Context, actor model.Actor, tenderID string, in tender.UpdateInput) (model.Tender, error)
	Delete(ctx context.Context, actor model.Actor, tenderID string) error
	Get(ctx context.Context, tenderID string) (model.Tender, error)
	List(ctx context.Context, f model.TenderFilter) ([]model.Tender, int, error)
	ListMine(ctx context.Context, actor model.Actor) ([]model.Tender, error)
	BiddersForMyTenders(ctx context.Context, actor model.Actor) ([]tender.BidderApplications, error)
}

type TenderHandler struct {
	service TenderServiceInterface
}

func NewTenderHandler(service TenderServiceInterface) *TenderHandler {
	return &TenderHandler{service: service}
}

// CreateTenderHandler handles POST /tenders
func (h *TenderHandler) CreateTenderHandler(c *gin.Context) {
	var req helpers.CreateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateTenderHandler", err)
		return
	}

	actor := helpers.CurrentActor(c)
	t, err := h.service.Create(c.Request.Context(), actor, tender.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Deadline:      req.Deadline,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		IsUrgent:      req.IsUrgent,
		Tags:          req.Tags,
		Requirements:  req.Requirements,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Status:        req.Status,
		Documents:     req.Documents,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateTenderHandler: failed to create tender", map[string]any{
			"actor_id": actor.ID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, t, "tender created successfully")
	helpers.LogSuccess("CreateTenderHandler", "tender created successfully", map[string]any{
		"tender_id": t.TenderID,
		"actor_id":  actor.ID,
		"status":    string(t.Status),
	})
}

// UpdateTenderHandler handles PUT /tenders/:tender_id
func (h *TenderHandler) UpdateTenderHandler(c *gin.Context) {
	var req helpers.UpdateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateTenderHandler", err)
		return
	}

	actor := helpers.CurrentActor(c)
	tenderID := c.Param("tender_id")
	t, err := h.service.Update(c.Request.Context(), actor, tenderID, tender.UpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Deadline:      req.Deadline,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		IsUrgent:      req.IsUrgent,
		Tags:          req.Tags,
		Requirements:  req.Requirements,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Status:        req.Status,
		Documents:     req.Documents,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateTenderHandler: failed to update tender", map[string]any{
			"tender_id": tenderID,
			"actor_id":  actor.ID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "tender updated successfully")
	helpers.LogSuccess("UpdateTenderHandler", "tender updated successfully", map[string]any{
		"tender_id": t.TenderID,
		"actor_id":  actor.ID,
	})
}

// DeleteTenderHandler handles DELETE /tenders/:tender_id
func (h *TenderHandler) DeleteTenderHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	tenderID := c.Param("tender_id")
	if err := h.service.Delete(c.Request.Context(), actor, tenderID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteTenderHandler: failed to delete tender", map[string]any{
			"tender_id": tenderID,
			"actor_id":  actor.ID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"tender_id": tenderID}, "tender deleted successfully")
	helpers.LogSuccess("DeleteTenderHandler", "tender deleted successfully", map[string]any{
		"tender_id": tenderID,
		"actor_id":  actor.ID,
	})
}

// GetTenderHandler handles GET /tenders/:tender_id
func (h *TenderHandler) GetTenderHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	t, err := h.service.Get(c.Request.Context(), tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetTenderHandler: error retrieving tender", map[string]any{"tender_id": tenderID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, t, "tender retrieved successfully")
}

// ListTendersHandler handles GET /tenders
func (h *TenderHandler) ListTendersHandler(c *gin.Context) {
	f := helpers.ParseTenderFilter(c)
	tenders, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListTendersHandler: error listing tenders", map[string]any{"error": err.Error()})
		return
	}

	if tenders == nil {
		tenders = []model.Tender{}
	}

	resp := helpers.TenderListResponse{Tenders: tenders, Total: total, Page: f.Page, Limit: f.Limit}
	utils.JSONResponse(c, http.StatusOK, resp, "tenders retrieved successfully")
}

// ListMyTendersHandler handles GET /tenders/mine
func (h *TenderHandler) ListMyTendersHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	tenders, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListMyTendersHandler: error listing tenders", map[string]any{"actor_id": actor.ID, "error": err.Error()})
		return
	}

	if tenders == nil {
		tenders = []model.Tender{}
	}

	utils.JSONResponse(c, http.StatusOK, tenders, "tenders retrieved successfully")
	helpers.LogSuccess("ListMyTendersHandler", "tenders retrieved successfully", map[string]any{
		"actor_id": actor.ID,
		"count":    len(tenders),
	})
}

// ListBiddersHandler handles GET /tenders/bidders
func (h *TenderHandler) ListBiddersHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	bidders, err := h.service.BiddersForMyTenders(c.Request.Context(), actor)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBiddersHandler: error listing bidders", map[string]any{"actor_id": actor.ID, "error": err.Error()})
		return
	}

	if bidders == nil {
		bidders = []tender.BidderApplications{}
	}

	utils.JSONResponse(c, http.StatusOK, bidders, "bidders retrieved successfully")
}
