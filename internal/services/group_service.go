package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotInGroup = errors.New("user is not part of a group")

// GroupService handles group membership queries
type GroupService struct {
	userRepo repository.UserRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		userRepo: userRepo,
	}
}

// ListGroupMembers returns the other leaders and members of the user's group.
func (s *GroupService) ListGroupMembers(userID uint64) ([]models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.InGroup() {
		return nil, ErrNotInGroup
	}

	members, err := s.userRepo.ListGroupMembers(*user.GroupID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}
