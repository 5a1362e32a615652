package repository

import (
	"time"

	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// FindByOwner finds a board with its ordered columns and tasks
func (r *GormBoardRepository) FindByOwner(owner models.BoardOwner) (*models.Board, error) {
	var board models.Board
	if err := r.db.
		Preload("Columns", database.ByPosition).
		Preload("Columns.Tasks", database.ByPosition).
		Where("owner_id = ? AND owner_type = ?", owner.ID, owner.Type).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// ReplaceColumns swaps the complete column sequence in one transaction
func (r *GormBoardRepository) ReplaceColumns(boardID uint64, name string, columns []models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteBoardContents(tx, boardID); err != nil {
			return err
		}

		for i := range columns {
			columns[i].ID = 0
			columns[i].BoardID = boardID
			for j := range columns[i].Tasks {
				columns[i].Tasks[j].ID = 0
				columns[i].Tasks[j].BoardID = boardID
				columns[i].Tasks[j].ColumnID = 0
			}
		}
		if len(columns) > 0 {
			if err := tx.Create(&columns).Error; err != nil {
				return err
			}
		}

		updates := map[string]any{"updated_at": time.Now()}
		if name != "" {
			updates["name"] = name
		}
		return tx.Model(&models.Board{}).Where("id = ?", boardID).Updates(updates).Error
	})
}

// ClearColumns removes every column and task of a board
func (r *GormBoardRepository) ClearColumns(boardID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteBoardContents(tx, boardID); err != nil {
			return err
		}
		return tx.Model(&models.Board{}).Where("id = ?", boardID).Update("updated_at", time.Now()).Error
	})
}

func deleteBoardContents(tx *gorm.DB, boardID uint64) error {
	if err := tx.Where("board_id = ?", boardID).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	return tx.Where("board_id = ?", boardID).Delete(&models.Column{}).Error
}

// FindColumn finds a column by its client key within a board
func (r *GormBoardRepository) FindColumn(boardID uint64, key string) (*models.Column, error) {
	var column models.Column
	if err := r.db.
		Preload("Tasks", database.ByPosition).
		Where("board_id = ? AND column_key = ?", boardID, key).
		First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// CreateColumn appends a column (with nested tasks) to a board
func (r *GormBoardRepository) CreateColumn(column *models.Column) error {
	for i := range column.Tasks {
		column.Tasks[i].BoardID = column.BoardID
	}
	return r.db.Create(column).Error
}

// DeleteColumn deletes a column and its tasks
func (r *GormBoardRepository) DeleteColumn(columnID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("column_id = ?", columnID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Column{}, columnID).Error
	})
}

// FindTask finds a task by its client key within a column
func (r *GormBoardRepository) FindTask(columnID uint64, key string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("column_id = ? AND task_key = ?", columnID, key).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskKeyExists reports whether any column of the board holds the key
func (r *GormBoardRepository) TaskKeyExists(boardID uint64, key string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Task{}).
		Where("board_id = ? AND task_key = ?", boardID, key).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateTask creates a task inside a column
func (r *GormBoardRepository) CreateTask(task *models.Task) error {
	return r.db.Create(task).Error
}

// UpdateTask saves every field of a task
func (r *GormBoardRepository) UpdateTask(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteTask deletes a task
func (r *GormBoardRepository) DeleteTask(taskID uint64) error {
	return r.db.Delete(&models.Task{}, taskID).Error
}

// UpdateName renames a board
func (r *GormBoardRepository) UpdateName(boardID uint64, name string) error {
	return r.db.Model(&models.Board{}).Where("id = ?", boardID).
		Updates(map[string]any{"name": name, "updated_at": time.Now()}).Error
}

// Touch bumps the board's updated_at timestamp
func (r *GormBoardRepository) Touch(boardID uint64) error {
	return r.db.Model(&models.Board{}).Where("id = ?", boardID).Update("updated_at", time.Now()).Error
}
