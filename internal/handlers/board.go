package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// BoardHandler serves the board document and its targeted mutations.
type BoardHandler struct {
	boardService   *services.BoardService
	commentService *services.CommentService
	aiService      *services.AIService
}

// NewBoardHandler creates a new BoardHandler. aiService may be nil.
func NewBoardHandler(boardService *services.BoardService, commentService *services.CommentService, aiService *services.AIService) *BoardHandler {
	return &BoardHandler{
		boardService:   boardService,
		commentService: commentService,
		aiService:      aiService,
	}
}

type ownerRequest struct {
	OwnerID   dto.FlexID       `json:"ownerId"`
	OwnerType models.OwnerType `json:"ownerType"`
}

func (r ownerRequest) owner() models.BoardOwner {
	return models.BoardOwner{ID: r.OwnerID.String(), Type: r.OwnerType}
}

func (r ownerRequest) missing() bool {
	return r.OwnerID.IsZero() || r.OwnerType == ""
}

// GetBoard returns the owner's board, creating it on first access.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	owner := models.BoardOwner{
		ID:   c.Query("ownerId"),
		Type: models.OwnerType(c.Query("ownerType")),
	}

	board, err := h.boardService.GetOrCreate(owner)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve board")
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"board": board})
}

// UpdateBoard replaces the whole column snapshot.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	var req struct {
		ownerRequest
		Name    string            `json:"name"`
		Columns []dto.ColumnInput `json:"columns"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() {
		apierrors.BadRequest(c, "Owner ID and owner type are required")
		return
	}

	input := services.ReplaceBoardInput{Owner: req.owner(), Name: req.Name}
	if req.Columns != nil {
		columns, err := dto.ToColumnModels(req.Columns)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Columns = columns
	}

	board, err := h.boardService.ReplaceColumns(input)
	if err != nil {
		respondServiceError(c, err, "Failed to update board")
		return
	}

	respondSuccess(c, http.StatusOK, "Board updated successfully", gin.H{"board": board})
}

// AddColumn appends a column to the board.
func (h *BoardHandler) AddColumn(c *gin.Context) {
	var req struct {
		ownerRequest
		Column *dto.ColumnInput `json:"column"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() || req.Column == nil {
		apierrors.BadRequest(c, "Owner ID, owner type, and column data are required")
		return
	}

	column, err := dto.ToColumnModel(*req.Column)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.AddColumn(req.owner(), column)
	if err != nil {
		respondServiceError(c, err, "Failed to add column")
		return
	}

	respondSuccess(c, http.StatusOK, "Column added successfully", gin.H{"board": board})
}

// DeleteColumn removes a column and every task in it.
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	var req struct {
		ownerRequest
		ColumnID dto.FlexID `json:"columnId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() || req.ColumnID.IsZero() {
		apierrors.BadRequest(c, "Owner ID, owner type, and column ID are required")
		return
	}

	board, err := h.boardService.RemoveColumn(req.owner(), req.ColumnID.String())
	if err != nil {
		respondServiceError(c, err, "Failed to delete column")
		return
	}

	respondSuccess(c, http.StatusOK, "Column deleted successfully", gin.H{"board": board})
}

// AddTask appends a task to a column.
func (h *BoardHandler) AddTask(c *gin.Context) {
	var req struct {
		ownerRequest
		ColumnID dto.FlexID     `json:"columnId"`
		Task     *dto.TaskInput `json:"task"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() || req.ColumnID.IsZero() || req.Task == nil {
		apierrors.BadRequest(c, "Owner ID, owner type, column ID, and task data are required")
		return
	}

	task, err := dto.ToTaskModel(*req.Task)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.AddTask(req.owner(), req.ColumnID.String(), task)
	if err != nil {
		respondServiceError(c, err, "Failed to add task")
		return
	}

	respondSuccess(c, http.StatusOK, "Task added successfully", gin.H{"board": board})
}

// UpdateTask merges the supplied fields into a task.
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	var req struct {
		ownerRequest
		ColumnID dto.FlexID                 `json:"columnId"`
		TaskID   dto.FlexID                 `json:"taskId"`
		Updates  map[string]json.RawMessage `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() || req.ColumnID.IsZero() || req.TaskID.IsZero() {
		apierrors.BadRequest(c, "Owner ID, owner type, column ID, and task ID are required")
		return
	}

	update, err := parseTaskUpdate(req.Updates)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.UpdateTask(req.owner(), req.ColumnID.String(), req.TaskID.String(), update)
	if err != nil {
		respondServiceError(c, err, "Failed to update task")
		return
	}

	respondSuccess(c, http.StatusOK, "Task updated successfully", gin.H{"board": board})
}

// DeleteTask removes a task from a column.
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	var req struct {
		ownerRequest
		ColumnID dto.FlexID `json:"columnId"`
		TaskID   dto.FlexID `json:"taskId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() || req.ColumnID.IsZero() || req.TaskID.IsZero() {
		apierrors.BadRequest(c, "Owner ID, owner type, column ID, and task ID are required")
		return
	}

	board, err := h.boardService.RemoveTask(req.owner(), req.ColumnID.String(), req.TaskID.String())
	if err != nil {
		respondServiceError(c, err, "Failed to delete task")
		return
	}

	respondSuccess(c, http.StatusOK, "Task deleted successfully", gin.H{"board": board})
}

// ClearBoard empties the board along with its comments and notifications.
func (h *BoardHandler) ClearBoard(c *gin.Context) {
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.missing() {
		apierrors.BadRequest(c, "Owner ID and owner type are required")
		return
	}

	if err := h.boardService.Clear(req.owner()); err != nil {
		respondServiceError(c, err, "Failed to clear board data")
		return
	}

	respondSuccess(c, http.StatusOK, "Board data cleared successfully", nil)
}

// CleanupComments deletes comments that carry no board ownership.
func (h *BoardHandler) CleanupComments(c *gin.Context) {
	deleted, err := h.commentService.CleanupOrphaned()
	if err != nil {
		respondServiceError(c, err, "Server error while cleaning up orphaned comments")
		return
	}

	respondSuccess(c, http.StatusOK, fmt.Sprintf("Cleaned up %d orphaned comments", deleted), gin.H{
		"deletedCount": deleted,
	})
}

// GenerateTasks drafts tasks from free text with the AI service.
func (h *BoardHandler) GenerateTasks(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Text is required")
		return
	}

	drafts, err := h.aiService.GenerateTasksFromText(c.Request.Context(), req.Text)
	if err != nil {
		respondServiceError(c, err, "Failed to generate tasks")
		return
	}

	tasks := make([]models.Task, len(drafts))
	for i, draft := range drafts {
		tasks[i] = draft.ToTask()
		tasks[i].CreatedAt = time.Now()
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"tasks": tasks})
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// parseTaskUpdate reads a partial task. Absent keys are left untouched and
// null clears optional fields.
func parseTaskUpdate(raw map[string]json.RawMessage) (services.TaskUpdate, error) {
	var update services.TaskUpdate

	decode := func(key string, dst any) error {
		if err := json.Unmarshal(raw[key], dst); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		return nil
	}

	for key, value := range raw {
		switch key {
		case "title":
			update.Title = new(string)
			if err := decode(key, update.Title); err != nil {
				return update, err
			}
		case "description":
			update.Description = new(string)
			if err := decode(key, update.Description); err != nil {
				return update, err
			}
		case "priority":
			update.Priority = new(models.TaskPriority)
			if err := decode(key, update.Priority); err != nil {
				return update, err
			}
		case "dueDate":
			if isNull(value) {
				update.ClearDueDate = true
				continue
			}
			update.DueDate = new(time.Time)
			if err := decode(key, update.DueDate); err != nil {
				return update, err
			}
		case "assignedTo":
			var id dto.FlexID
			if err := decode(key, &id); err != nil {
				return update, err
			}
			assignee, err := id.OptionalUint64()
			if err != nil {
				return update, err
			}
			if assignee == nil {
				update.ClearAssignee = true
				continue
			}
			update.AssignedTo = assignee
		case "assignedToName":
			update.AssignedToName = new(string)
			if err := decode(key, update.AssignedToName); err != nil {
				return update, err
			}
		case "assignedToEmail":
			update.AssignedToEmail = new(string)
			if err := decode(key, update.AssignedToEmail); err != nil {
				return update, err
			}
		case "order":
			update.Order = new(int)
			if err := decode(key, update.Order); err != nil {
				return update, err
			}
		}
	}

	return update, nil
}
