package handler

import (
	"context"
	"fmt"
	"net/http"

	application "tender-tracker/internal/applicationService"
	model "tender-tracker/internal/models"
	"tender-tracker/services/tenders/helpers"
	"tender-tracker/utils"

	"github.com/gin-gonic/gin"
)

type ApplicationServiceInterface interface {
	Submit(ctx context.Context, actor model.Actor, tenderID string, in application.SubmitInput) (model.Application, error)
	Withdraw(ctx context.Context, actor model.Actor, applicationID string) (model.Application, error)
	SetStatus(ctx context.Context, actor model.Actor, applicationID, status, comment string) (application.SetStatusResult, error)
	Get(ctx context.Context, actor model.Actor, applicationID string) (model.Application, error)
	ListMine(ctx context.Context, actor model.Actor) ([]model.Application, error)
	ListForTender(ctx context.Context, actor model.Actor, tenderID string) ([]model.Application, error)
}

type ApplicationHandler struct {
	service ApplicationServiceInterface
}

func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// SubmitApplicationHandler handles POST /tenders/:tender_id/applications
func (h *ApplicationHandler) SubmitApplicationHandler(c *gin.Context) {
	var req helpers.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitApplicationHandler", err)
		return
	}

	actor := helpers.CurrentActor(c)
	tenderID := c.Param("tender_id")
	app, err := h.service.Submit(c.Request.Context(), actor, tenderID, application.SubmitInput{
		BidderName:    req.BidderName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		BidAmount:     req.BidAmount,
		Timeframe:     req.Timeframe,
		Message:       req.Message,
		Files:         req.Files,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SubmitApplicationHandler: failed to submit application", map[string]any{
			"tender_id": tenderID,
			"actor_id":  actor.ID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, app, "application submitted successfully")
	helpers.LogSuccess("SubmitApplicationHandler", "application submitted successfully", map[string]any{
		"application_id": app.ApplicationID,
		"tender_id":      tenderID,
		"actor_id":       actor.ID,
		"bid_amount":     app.BidAmount,
	})
}

// WithdrawApplicationHandler handles POST /applications/:application_id/withdraw
func (h *ApplicationHandler) WithdrawApplicationHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	applicationID := c.Param("application_id")
	app, err := h.service.Withdraw(c.Request.Context(), actor, applicationID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WithdrawApplicationHandler: failed to withdraw", map[string]any{
			"application_id": applicationID,
			"actor_id":       actor.ID,
			"error":          err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, app, "application withdrawn successfully")
	helpers.LogSuccess("WithdrawApplicationHandler", "application withdrawn successfully", map[string]any{
		"application_id": app.ApplicationID,
		"actor_id":       actor.ID,
	})
}

// SetApplicationStatusHandler handles PATCH /applications/:application_id/status
func (h *ApplicationHandler) SetApplicationStatusHandler(c *gin.Context) {
	var req helpers.SetApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetApplicationStatusHandler", err)
		return
	}

	actor := helpers.CurrentActor(c)
	applicationID := c.Param("application_id")
	res, err := h.service.SetStatus(c.Request.Context(), actor, applicationID, req.Status, req.Comment)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SetApplicationStatusHandler: failed to change status", map[string]any{
			"application_id": applicationID,
			"actor_id":       actor.ID,
			"status":         req.Status,
			"error":          err.Error(),
		})
		return
	}

	if res.Cascade != nil {
		resp := helpers.AwardResponse{
			Tender:        res.Cascade.Tender,
			Accepted:      res.Cascade.Accepted,
			RejectedCount: len(res.Cascade.Rejected),
		}
		utils.JSONResponse(c, http.StatusOK, resp, "application accepted and tender awarded")
		helpers.LogSuccess("SetApplicationStatusHandler", "application accepted and tender awarded", map[string]any{
			"application_id": applicationID,
			"tender_id":      res.Cascade.Tender.TenderID,
			"rejected_count": len(res.Cascade.Rejected),
			"actor_id":       actor.ID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res.Application, "application status updated successfully")
	helpers.LogSuccess("SetApplicationStatusHandler", "application status updated successfully", map[string]any{
		"application_id": applicationID,
		"status":         req.Status,
		"actor_id":       actor.ID,
	})
}

// GetApplicationHandler handles GET /applications/:application_id
func (h *ApplicationHandler) GetApplicationHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	applicationID := c.Param("application_id")
	app, err := h.service.Get(c.Request.Context(), actor, applicationID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetApplicationHandler: error retrieving application", map[string]any{
			"application_id": applicationID,
			"actor_id":       actor.ID,
			"error":          err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, app, "application retrieved successfully")
}

// ListMyApplicationsHandler handles GET /applications/mine
func (h *ApplicationHandler) ListMyApplicationsHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	apps, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListMyApplicationsHandler: error listing applications", map[string]any{"actor_id": actor.ID, "error": err.Error()})
		return
	}

	if apps == nil {
		apps = []model.Application{}
	}

	utils.JSONResponse(c, http.StatusOK, apps, "applications retrieved successfully")
}

// ListTenderApplicationsHandler handles GET /tenders/:tender_id/applications
func (h *ApplicationHandler) ListTenderApplicationsHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	tenderID := c.Param("tender_id")
	apps, err := h.service.ListForTender(c.Request.Context(), actor, tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListTenderApplicationsHandler: error listing applications", map[string]any{
			"tender_id": tenderID,
			"actor_id":  actor.ID,
			"error":     err.Error(),
		})
		return
	}

	if apps == nil {
		apps = []model.Application{}
	}

	utils.JSONResponse(c, http.StatusOK, apps, "applications retrieved successfully")
	helpers.LogSuccess("ListTenderApplicationsHandler", "applications retrieved successfully", map[string]any{
		"tender_id": tenderID,
		"count":     len(apps),
	})
}
