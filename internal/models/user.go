package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeSingle UserType = "single"
	UserTypeGroup  UserType = "group"
)

type Role string

const (
	RoleNone   Role = "none"
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	UserType     UserType       `gorm:"type:varchar(20);not null" json:"userType"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'none'" json:"role"`
	GroupID      *string        `gorm:"type:varchar(50);index" json:"groupId,omitempty"`
	AccessKey    *string        `gorm:"type:varchar(50);uniqueIndex" json:"accessKey,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// InGroup reports whether the user belongs to an access-key group.
func (u User) InGroup() bool {
	return u.UserType == UserTypeGroup && u.GroupID != nil && *u.GroupID != ""
}
