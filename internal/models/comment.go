package models

import (
	"time"

	"gorm.io/datatypes"
)

type Comment struct {
	ID             uint64                      `gorm:"primarykey" json:"id"`
	TaskKey        string                      `gorm:"type:varchar(100);not null;index:idx_comments_task_owner" json:"taskId"`
	BoardOwnerID   string                      `gorm:"type:varchar(64);index:idx_comments_task_owner" json:"boardOwnerId"`
	BoardOwnerType OwnerType                   `gorm:"type:varchar(10);index:idx_comments_task_owner" json:"boardOwnerType"`
	Text           string                      `gorm:"type:text;not null" json:"text"`
	AuthorID       uint64                      `gorm:"not null" json:"authorId"`
	AuthorName     string                      `gorm:"type:varchar(255);not null" json:"authorName"`
	AuthorEmail    string                      `gorm:"type:varchar(255)" json:"authorEmail"`
	ViewedBy       datatypes.JSONSlice[uint64] `json:"viewedBy"`
	CreatedAt      time.Time                   `gorm:"index" json:"createdAt"`
}
