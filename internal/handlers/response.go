package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// respondSuccess writes the success envelope merged with payload.
func respondSuccess(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondServiceError maps a service error to an HTTP response. Unknown
// errors are logged and surface as fallback with a 500.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequest(c, validationErr.Message)

	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, "Column not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")

	case errors.Is(err, services.ErrColumnExists):
		apierrors.Conflict(c, "A column with this ID already exists")
	case errors.Is(err, services.ErrTaskExists):
		apierrors.Conflict(c, "A task with this ID already exists on the board")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrAccessKeyInUse):
		apierrors.Conflict(c, "This access key is already in use. Please create a new one.")

	case errors.Is(err, services.ErrAccessKeyRequired):
		apierrors.BadRequest(c, "Access key is required for group members")
	case errors.Is(err, services.ErrInvalidAccessKey):
		apierrors.BadRequest(c, "Invalid access key. Please check with your group leader.")
	case errors.Is(err, services.ErrNotInGroup):
		apierrors.BadRequest(c, "User is not part of a group")

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)

	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAINoTasksGenerated):
		apierrors.BadRequest(c, "No tasks could be generated from the text")

	default:
		slog.Error(fallback,
			slog.String("request_id", c.Writer.Header().Get(constants.HeaderRequestID)),
			slog.String("path", c.FullPath()),
			slog.Any("error", err))
		apierrors.InternalError(c, fallback)
	}
}
