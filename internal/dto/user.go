package dto

import (
	"strconv"
	"time"

	"github.com/yukikurage/kanban-board-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	UserType  models.UserType `json:"userType"`
	Role      models.Role     `json:"role"`
	GroupID   string          `json:"groupId,omitempty"`
	AccessKey string          `json:"accessKey,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// GroupMemberDTO is the projection used for assignee pickers
type GroupMemberDTO struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// ToUserDTO converts a User model to UserDTO. The access key is only
// exposed to the leader who owns it.
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        strconv.FormatUint(user.ID, 10),
		Name:      user.Name,
		Email:     user.Email,
		UserType:  user.UserType,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.GroupID != nil {
		dto.GroupID = *user.GroupID
	}
	if user.Role == models.RoleLeader && user.AccessKey != nil {
		dto.AccessKey = *user.AccessKey
	}
	return dto
}

// ToGroupMemberDTOs projects group members to {id, name, email, role}
func ToGroupMemberDTOs(users []models.User) []GroupMemberDTO {
	members := make([]GroupMemberDTO, len(users))
	for i, u := range users {
		members[i] = GroupMemberDTO{
			ID:    strconv.FormatUint(u.ID, 10),
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		}
	}
	return members
}
