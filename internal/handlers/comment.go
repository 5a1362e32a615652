package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// CommentHandler serves task comments.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments returns the comments of a task on one board, oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	owner := models.BoardOwner{
		ID:   c.Query("boardOwnerId"),
		Type: models.OwnerType(c.Query("boardOwnerType")),
	}

	comments, err := h.commentService.ListForTask(c.Param("taskId"), owner)
	if err != nil {
		respondServiceError(c, err, "Server error while fetching comments")
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"comments": comments})
}

// AddComment stores a comment on a task and notifies the relevant group user.
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req struct {
		Text           string           `json:"text"`
		AuthorID       dto.FlexID       `json:"authorId"`
		AuthorName     string           `json:"authorName"`
		AuthorEmail    string           `json:"authorEmail"`
		AssignedTo     dto.FlexID       `json:"assignedTo"`
		BoardOwnerID   dto.FlexID       `json:"boardOwnerId"`
		BoardOwnerType models.OwnerType `json:"boardOwnerType"`
		TaskTitle      string           `json:"taskTitle"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var authorID uint64
	if !req.AuthorID.IsZero() {
		id, err := req.AuthorID.Uint64()
		if err != nil {
			apierrors.BadRequest(c, "Invalid authorId")
			return
		}
		authorID = id
	}
	assignedTo, err := req.AssignedTo.OptionalUint64()
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignedTo")
		return
	}

	comment, err := h.commentService.Create(services.CreateCommentInput{
		TaskKey:     c.Param("taskId"),
		Owner:       models.BoardOwner{ID: req.BoardOwnerID.String(), Type: req.BoardOwnerType},
		Text:        req.Text,
		AuthorID:    authorID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		AssignedTo:  assignedTo,
		TaskTitle:   req.TaskTitle,
	})
	if err != nil {
		respondServiceError(c, err, "Server error while adding comment")
		return
	}

	respondSuccess(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": comment})
}
