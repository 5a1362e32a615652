package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnExists   = errors.New("a column with this id already exists")
	ErrTaskExists     = errors.New("a task with this id already exists on the board")
)

// BoardService handles board, column and task business logic
type BoardService struct {
	boards      repository.BoardRepository
	coordinator *Coordinator
	logger      *slog.Logger
}

// NewBoardService creates a new BoardService
func NewBoardService(boards repository.BoardRepository, coordinator *Coordinator, logger *slog.Logger) *BoardService {
	return &BoardService{
		boards:      boards,
		coordinator: coordinator,
		logger:      logger,
	}
}

// DefaultBoardName returns the name given to a lazily created board.
func DefaultBoardName(owner models.BoardOwner) string {
	if owner.Type == models.OwnerTypeGroup {
		return fmt.Sprintf(constants.GroupBoardNameTemplate, owner.ID)
	}
	return constants.DefaultUserBoardName
}

func validateOwner(owner models.BoardOwner) error {
	if strings.TrimSpace(owner.ID) == "" || owner.Type == "" {
		return invalid("Owner ID and owner type are required")
	}
	if !owner.Type.Valid() {
		return invalid("Invalid owner type %q", owner.Type)
	}
	return nil
}

// GetOrCreate returns the owner's board, creating an empty one on first access.
func (s *BoardService) GetOrCreate(owner models.BoardOwner) (*models.Board, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	return s.getOrCreate(owner, "")
}

func (s *BoardService) getOrCreate(owner models.BoardOwner, name string) (*models.Board, error) {
	board, err := s.boards.FindByOwner(owner)
	if err == nil {
		return normalizeBoard(board), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if name == "" {
		name = DefaultBoardName(owner)
	}
	board = &models.Board{OwnerID: owner.ID, OwnerType: owner.Type, Name: name}
	if err := s.boards.Create(board); err != nil {
		// a concurrent request may have created it first
		existing, findErr := s.boards.FindByOwner(owner)
		if findErr != nil {
			return nil, fmt.Errorf("failed to create board: %w", err)
		}
		return normalizeBoard(existing), nil
	}

	s.logger.Info("board created", "owner_id", owner.ID, "owner_type", owner.Type)
	return normalizeBoard(board), nil
}

func (s *BoardService) find(owner models.BoardOwner) (*models.Board, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	board, err := s.boards.FindByOwner(owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

func (s *BoardService) reload(owner models.BoardOwner) (*models.Board, error) {
	board, err := s.boards.FindByOwner(owner)
	if err != nil {
		return nil, fmt.Errorf("failed to reload board: %w", err)
	}
	return normalizeBoard(board), nil
}

// normalizeBoard makes empty relations serialize as [] rather than null.
func normalizeBoard(board *models.Board) *models.Board {
	if board.Columns == nil {
		board.Columns = []models.Column{}
	}
	for i := range board.Columns {
		if board.Columns[i].Tasks == nil {
			board.Columns[i].Tasks = []models.Task{}
		}
	}
	return board
}

// ReplaceBoardInput represents a whole-board snapshot
type ReplaceBoardInput struct {
	Owner models.BoardOwner
	Name  string
	// Columns is the complete new shape; nil keeps the stored columns.
	Columns []models.Column
}

// ReplaceColumns swaps the board's columns for the supplied snapshot. Tasks
// missing from the snapshot are cascaded before the new shape is stored.
func (s *BoardService) ReplaceColumns(input ReplaceBoardInput) (*models.Board, error) {
	if err := validateOwner(input.Owner); err != nil {
		return nil, err
	}
	if err := validateColumns(input.Columns); err != nil {
		return nil, err
	}

	board, err := s.getOrCreate(input.Owner, input.Name)
	if err != nil {
		return nil, err
	}

	if input.Columns == nil {
		if input.Name != "" && input.Name != board.Name {
			if err := s.boards.UpdateName(board.ID, input.Name); err != nil {
				return nil, fmt.Errorf("failed to rename board: %w", err)
			}
		}
		return s.reload(input.Owner)
	}

	removed := RemovedTaskKeys(board.Columns, input.Columns)
	if len(removed) > 0 {
		s.logger.Info("tasks removed by board update",
			"owner_id", input.Owner.ID, "owner_type", input.Owner.Type, "tasks", removed)
		s.coordinator.TasksRemoved(input.Owner, removed)
	}

	for i := range input.Columns {
		input.Columns[i].Position = i
		for j := range input.Columns[i].Tasks {
			input.Columns[i].Tasks[j].Position = j
			if input.Columns[i].Tasks[j].Priority == "" {
				input.Columns[i].Tasks[j].Priority = models.PriorityMedium
			}
		}
	}

	if err := s.boards.ReplaceColumns(board.ID, input.Name, input.Columns); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.reload(input.Owner)
}

func validateColumns(columns []models.Column) error {
	columnKeys := make(map[string]struct{}, len(columns))
	taskKeys := make(map[string]struct{})
	for _, column := range columns {
		if err := validateColumn(column); err != nil {
			return err
		}
		if _, ok := columnKeys[column.Key]; ok {
			return invalid("Duplicate column id %q", column.Key)
		}
		columnKeys[column.Key] = struct{}{}

		for _, task := range column.Tasks {
			if _, ok := taskKeys[task.Key]; ok {
				return invalid("Duplicate task id %q", task.Key)
			}
			taskKeys[task.Key] = struct{}{}
		}
	}
	return nil
}

func validateColumn(column models.Column) error {
	if column.Key == "" {
		return invalid("Column id is required")
	}
	seen := make(map[string]struct{}, len(column.Tasks))
	for _, task := range column.Tasks {
		if task.Key == "" {
			return invalid("Task id is required in column %q", column.Key)
		}
		if _, ok := seen[task.Key]; ok {
			return invalid("Duplicate task id %q", task.Key)
		}
		seen[task.Key] = struct{}{}
		if err := validatePriority(task.Priority); err != nil {
			return err
		}
	}
	return nil
}

func validatePriority(priority models.TaskPriority) error {
	if priority != "" && !priority.Valid() {
		return invalid("Invalid priority %q (must be Low, Medium or High)", priority)
	}
	return nil
}

// AddColumn appends a column to the owner's board, creating the board if needed.
func (s *BoardService) AddColumn(owner models.BoardOwner, column models.Column) (*models.Board, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if err := validateColumn(column); err != nil {
		return nil, err
	}

	board, err := s.getOrCreate(owner, "")
	if err != nil {
		return nil, err
	}

	for _, existing := range board.Columns {
		if existing.Key == column.Key {
			return nil, ErrColumnExists
		}
	}
	for _, task := range column.Tasks {
		exists, err := s.boards.TaskKeyExists(board.ID, task.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to check task id: %w", err)
		}
		if exists {
			return nil, ErrTaskExists
		}
	}

	column.ID = 0
	column.BoardID = board.ID
	column.Position = len(board.Columns)
	for i := range column.Tasks {
		column.Tasks[i].ID = 0
		column.Tasks[i].Position = i
		if column.Tasks[i].Priority == "" {
			column.Tasks[i].Priority = models.PriorityMedium
		}
	}

	if err := s.boards.CreateColumn(&column); err != nil {
		return nil, fmt.Errorf("failed to add column: %w", err)
	}
	if err := s.boards.Touch(board.ID); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.reload(owner)
}

func (s *BoardService) findColumn(board *models.Board, columnKey string) (*models.Column, error) {
	if columnKey == "" {
		return nil, invalid("Column ID is required")
	}
	column, err := s.boards.FindColumn(board.ID, columnKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}
	return column, nil
}

func (s *BoardService) findTask(column *models.Column, taskKey string) (*models.Task, error) {
	if taskKey == "" {
		return nil, invalid("Task ID is required")
	}
	task, err := s.boards.FindTask(column.ID, taskKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// RemoveColumn deletes a column and cascades every task it held.
func (s *BoardService) RemoveColumn(owner models.BoardOwner, columnKey string) (*models.Board, error) {
	board, err := s.find(owner)
	if err != nil {
		return nil, err
	}
	column, err := s.findColumn(board, columnKey)
	if err != nil {
		return nil, err
	}

	s.coordinator.TasksRemoved(owner, columnTaskKeys(*column))

	if err := s.boards.DeleteColumn(column.ID); err != nil {
		return nil, fmt.Errorf("failed to delete column: %w", err)
	}
	if err := s.boards.Touch(board.ID); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.reload(owner)
}

// AddTask appends a task to a column. A task without a key gets a fresh UUID.
func (s *BoardService) AddTask(owner models.BoardOwner, columnKey string, task models.Task) (*models.Board, error) {
	board, err := s.find(owner)
	if err != nil {
		return nil, err
	}
	column, err := s.findColumn(board, columnKey)
	if err != nil {
		return nil, err
	}
	if err := validatePriority(task.Priority); err != nil {
		return nil, err
	}

	if task.Key == "" {
		task.Key = uuid.NewString()
	} else {
		exists, err := s.boards.TaskKeyExists(board.ID, task.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to check task id: %w", err)
		}
		if exists {
			return nil, ErrTaskExists
		}
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	task.ID = 0
	task.BoardID = board.ID
	task.ColumnID = column.ID
	task.Position = len(column.Tasks)

	if err := s.boards.CreateTask(&task); err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}
	if err := s.boards.Touch(board.ID); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.reload(owner)
}

// TaskUpdate lists the task fields a client supplied. Nil fields are left
// untouched; the Clear flags reset optional fields to empty.
type TaskUpdate struct {
	Title           *string
	Description     *string
	Priority        *models.TaskPriority
	DueDate         *time.Time
	ClearDueDate    bool
	AssignedTo      *uint64
	ClearAssignee   bool
	AssignedToName  *string
	AssignedToEmail *string
	Order           *int
}

func (u TaskUpdate) apply(task *models.Task) {
	if u.Title != nil {
		task.Title = *u.Title
	}
	if u.Description != nil {
		task.Description = *u.Description
	}
	if u.Priority != nil {
		task.Priority = *u.Priority
	}
	if u.ClearDueDate {
		task.DueDate = nil
	} else if u.DueDate != nil {
		due := *u.DueDate
		task.DueDate = &due
	}
	if u.ClearAssignee {
		task.AssignedTo = nil
	} else if u.AssignedTo != nil {
		assignee := *u.AssignedTo
		task.AssignedTo = &assignee
	}
	if u.AssignedToName != nil {
		task.AssignedToName = *u.AssignedToName
	}
	if u.AssignedToEmail != nil {
		task.AssignedToEmail = *u.AssignedToEmail
	}
	if u.Order != nil {
		task.Order = *u.Order
	}
}

// UpdateTask merges the supplied fields into a task.
func (s *BoardService) UpdateTask(owner models.BoardOwner, columnKey, taskKey string, update TaskUpdate) (*models.Board, error) {
	board, err := s.find(owner)
	if err != nil {
		return nil, err
	}
	column, err := s.findColumn(board, columnKey)
	if err != nil {
		return nil, err
	}
	task, err := s.findTask(column, taskKey)
	if err != nil {
		return nil, err
	}

	if update.Priority != nil && *update.Priority == "" {
		return nil, invalid("Invalid priority %q (must be Low, Medium or High)", "")
	}

	update.apply(task)
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if err := validatePriority(task.Priority); err != nil {
		return nil, err
	}

	if err := s.boards.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := s.boards.Touch(board.ID); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.reload(owner)
}

// RemoveTask deletes a task and cascades its comments and notifications.
func (s *BoardService) RemoveTask(owner models.BoardOwner, columnKey, taskKey string) (*models.Board, error) {
	board, err := s.find(owner)
	if err != nil {
		return nil, err
	}
	column, err := s.findColumn(board, columnKey)
	if err != nil {
		return nil, err
	}
	task, err := s.findTask(column, taskKey)
	if err != nil {
		return nil, err
	}

	s.coordinator.TasksRemoved(owner, []string{task.Key})

	if err := s.boards.DeleteTask(task.ID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if err := s.boards.Touch(board.ID); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.reload(owner)
}

// Clear removes the owner's comments and notifications and then empties the
// board. The board is left untouched when the cascade fails.
func (s *BoardService) Clear(owner models.BoardOwner) error {
	board, err := s.find(owner)
	if err != nil {
		return err
	}

	if err := s.coordinator.BoardCleared(owner); err != nil {
		return fmt.Errorf("failed to clear board data: %w", err)
	}

	if err := s.boards.ClearColumns(board.ID); err != nil {
		return fmt.Errorf("failed to clear board: %w", err)
	}

	s.logger.Info("board cleared", "owner_id", owner.ID, "owner_type", owner.Type)
	return nil
}
