package handler

import (
	"context"
	"fmt"
	"net/http"

	model "tender-tracker/internal/models"
	"tender-tracker/services/tenders/helpers"
	"tender-tracker/utils"

	"github.com/gin-gonic/gin"
)

// NotificationStoreInterface is the slice of the store the notification
// endpoints need; the repository satisfies it directly.
type NotificationStoreInterface interface {
	ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) (model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	ClearNotifications(ctx context.Context, userID string) error
}

type NotificationHandler struct {
	store NotificationStoreInterface
}

func NewNotificationHandler(store NotificationStoreInterface) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// ListNotificationsHandler handles GET /notifications
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	notifications, err := h.store.ListNotificationsByUser(c.Request.Context(), actor.ID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListNotificationsHandler: error listing notifications", map[string]any{"actor_id": actor.ID, "error": err.Error()})
		return
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	utils.JSONResponse(c, http.StatusOK, notifications, "notifications retrieved successfully")
}

// MarkNotificationReadHandler handles PATCH /notifications/:notification_id/read
func (h *NotificationHandler) MarkNotificationReadHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	notificationID := c.Param("notification_id")
	notification, err := h.store.MarkNotificationRead(c.Request.Context(), notificationID, actor.ID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MarkNotificationReadHandler: error marking notification", map[string]any{
			"notification_id": notificationID,
			"actor_id":        actor.ID,
			"error":           err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, notification, "notification marked as read")
}

// MarkAllNotificationsReadHandler handles POST /notifications/read-all
func (h *NotificationHandler) MarkAllNotificationsReadHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	if err := h.store.MarkAllNotificationsRead(c.Request.Context(), actor.ID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MarkAllNotificationsReadHandler: error marking notifications", map[string]any{"actor_id": actor.ID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{}, "notifications marked as read")
}

// ClearNotificationsHandler handles DELETE /notifications
func (h *NotificationHandler) ClearNotificationsHandler(c *gin.Context) {
	actor := helpers.CurrentActor(c)
	if err := h.store.ClearNotifications(c.Request.Context(), actor.ID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ClearNotificationsHandler: error clearing notifications", map[string]any{"actor_id": actor.ID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{}, "notifications cleared")
}
