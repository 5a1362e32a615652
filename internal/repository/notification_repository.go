package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListForUser lists a user's newest notifications
func (r *GormNotificationRepository) ListForUser(userID uint64, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.
		Where("user_id = ?", userID).
		Scopes(database.NewestFirst(limit)).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one notification as read
func (r *GormNotificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// MarkAllRead flags every unread notification of a user as read
func (r *GormNotificationRepository) MarkAllRead(userID uint64) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// DeleteForTasks deletes notifications referencing any of the tasks
func (r *GormNotificationRepository) DeleteForTasks(taskKeys []string) (int64, error) {
	if len(taskKeys) == 0 {
		return 0, nil
	}
	result := r.db.Where("task_key IN ?", taskKeys).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// DeleteForUsers deletes every notification addressed to the users
func (r *GormNotificationRepository) DeleteForUsers(userIDs []uint64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id IN ?", userIDs).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
