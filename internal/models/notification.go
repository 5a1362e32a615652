package models

import "time"

type NotificationType string

const (
	NotificationTaskAssigned  NotificationType = "task_assigned"
	NotificationTaskUpdated   NotificationType = "task_updated"
	NotificationTaskCompleted NotificationType = "task_completed"
	NotificationCommentAdded  NotificationType = "comment_added"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTaskAssigned, NotificationTaskUpdated, NotificationTaskCompleted, NotificationCommentAdded:
		return true
	}
	return false
}

type Notification struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	UserID       uint64           `gorm:"not null;index" json:"userId"`
	Type         NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title        string           `gorm:"type:varchar(255);not null" json:"title"`
	Message      string           `gorm:"type:text;not null" json:"message"`
	TaskKey      *string          `gorm:"type:varchar(100);index" json:"taskId,omitempty"`
	TaskTitle    string           `gorm:"type:varchar(255)" json:"taskTitle,omitempty"`
	FromUserID   *uint64          `json:"fromUserId,omitempty"`
	FromUserName string           `gorm:"type:varchar(255)" json:"fromUserName,omitempty"`
	IsRead       bool             `gorm:"not null;default:false" json:"isRead"`
	CreatedAt    time.Time        `gorm:"index" json:"createdAt"`
}
