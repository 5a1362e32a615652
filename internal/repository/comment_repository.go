package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	if comment.ViewedBy == nil {
		comment.ViewedBy = []uint64{}
	}
	return r.db.Create(comment).Error
}

// ListForTask lists the comments of a task on one board, oldest first
func (r *GormCommentRepository) ListForTask(taskKey string, owner models.BoardOwner) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.
		Where("task_key = ? AND board_owner_id = ? AND board_owner_type = ?", taskKey, owner.ID, owner.Type).
		Scopes(database.OldestFirst).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteForTasks deletes the comments of the given tasks on one board
func (r *GormCommentRepository) DeleteForTasks(owner models.BoardOwner, taskKeys []string) (int64, error) {
	if len(taskKeys) == 0 {
		return 0, nil
	}
	result := r.db.
		Where("task_key IN ? AND board_owner_id = ? AND board_owner_type = ?", taskKeys, owner.ID, owner.Type).
		Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

// DeleteForOwner deletes every comment of a board
func (r *GormCommentRepository) DeleteForOwner(owner models.BoardOwner) (int64, error) {
	result := r.db.
		Where("board_owner_id = ? AND board_owner_type = ?", owner.ID, owner.Type).
		Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

// DeleteOrphaned deletes comments that carry no board ownership
func (r *GormCommentRepository) DeleteOrphaned() (int64, error) {
	result := r.db.
		Where("board_owner_id = ? OR board_owner_id IS NULL OR board_owner_type = ? OR board_owner_type IS NULL", "", "").
		Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}
