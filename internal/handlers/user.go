package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// UserHandler serves group membership queries.
type UserHandler struct {
	groupService *services.GroupService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(groupService *services.GroupService) *UserHandler {
	return &UserHandler{
		groupService: groupService,
	}
}

// GroupMembers lists the other leaders and members of the caller's group.
func (h *UserHandler) GroupMembers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "User ID is required")
		return
	}

	members, err := h.groupService.ListGroupMembers(userID)
	if err != nil {
		respondServiceError(c, err, "Server error while fetching group members")
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"members": dto.ToGroupMemberDTOs(members),
		"count":   len(members),
	})
}
