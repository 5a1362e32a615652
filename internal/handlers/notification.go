package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// NotificationHandler serves a user's notification feed.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the caller's newest notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "User ID is required")
		return
	}

	notifications, err := h.notificationService.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err, "Server error while fetching notifications")
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"notifications": notifications})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		respondServiceError(c, err, "Server error while marking notification as read")
		return
	}

	respondSuccess(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead flags every notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "User ID is required")
		return
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		respondServiceError(c, err, "Server error while marking all notifications as read")
		return
	}

	respondSuccess(c, http.StatusOK, "All notifications marked as read", nil)
}
