package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAccessKey finds the user holding an access key
func (r *GormUserRepository) FindByAccessKey(accessKey string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("access_key = ?", accessKey).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindLeaderByAccessKey finds the group leader holding an access key
func (r *GormUserRepository) FindLeaderByAccessKey(accessKey string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("access_key = ? AND role = ?", accessKey, models.RoleLeader).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindLeaderByGroupID finds the leader of a group
func (r *GormUserRepository) FindLeaderByGroupID(groupID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("group_id = ? AND role = ?", groupID, models.RoleLeader).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByGroupID lists every user of a group
func (r *GormUserRepository) FindByGroupID(groupID string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("group_id = ?", groupID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListGroupMembers lists leaders and members of a group, excluding one user
func (r *GormUserRepository) ListGroupMembers(groupID string, excludeUserID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.
		Where("group_id = ? AND role IN ? AND id <> ?", groupID, []models.Role{models.RoleLeader, models.RoleMember}, excludeUserID).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List lists all users ordered by group and role
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("group_id ASC").Order("role ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteByEmails permanently deletes the users with the given emails
func (r *GormUserRepository) DeleteByEmails(emails []string) (int64, error) {
	if len(emails) == 0 {
		return 0, nil
	}
	result := r.db.Unscoped().Where("email IN ?", emails).Delete(&models.User{})
	return result.RowsAffected, result.Error
}
