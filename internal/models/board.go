package models

import (
	"time"
)

type OwnerType string

const (
	OwnerTypeUser  OwnerType = "user"
	OwnerTypeGroup OwnerType = "group"
)

// Valid reports whether t is a known owner type.
func (t OwnerType) Valid() bool {
	return t == OwnerTypeUser || t == OwnerTypeGroup
}

// BoardOwner identifies the single board of a user or a group.
type BoardOwner struct {
	ID   string
	Type OwnerType
}

type Board struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	OwnerID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_boards_owner" json:"ownerId"`
	OwnerType OwnerType `gorm:"type:varchar(10);not null;uniqueIndex:idx_boards_owner" json:"ownerType"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Columns []Column `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns"`
}

// Owner returns the owner pair of the board.
func (b Board) Owner() BoardOwner {
	return BoardOwner{ID: b.OwnerID, Type: b.OwnerType}
}

type Column struct {
	ID       uint64 `gorm:"primarykey" json:"-"`
	BoardID  uint64 `gorm:"not null;index" json:"-"`
	Key      string `gorm:"column:column_key;type:varchar(100);not null" json:"id"`
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
	Position int    `gorm:"not null;default:0" json:"-"`

	// Relations
	Tasks []Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"tasks"`
}

func (Column) TableName() string {
	return "board_columns"
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is one of the supported priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID              uint64       `gorm:"primarykey" json:"-"`
	BoardID         uint64       `gorm:"not null;index" json:"-"`
	ColumnID        uint64       `gorm:"not null;index" json:"-"`
	Key             string       `gorm:"column:task_key;type:varchar(100);not null;index" json:"id"`
	Title           string       `gorm:"type:varchar(255);not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	Priority        TaskPriority `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	DueDate         *time.Time   `json:"dueDate"`
	AssignedTo      *uint64      `gorm:"index" json:"assignedTo"`
	AssignedToName  string       `gorm:"type:varchar(255)" json:"assignedToName"`
	AssignedToEmail string       `gorm:"type:varchar(255)" json:"assignedToEmail"`
	Order           int          `gorm:"column:sort_order;not null;default:0" json:"order"`
	Position        int          `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time    `json:"createdAt"`
}

func (Task) TableName() string {
	return "board_tasks"
}
