package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrAccessKeyInUse       = errors.New("access key already in use")
	ErrAccessKeyRequired    = errors.New("access key is required for group members")
	ErrInvalidAccessKey     = errors.New("invalid access key")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name      string
	Email     string
	Password  string
	UserType  models.UserType
	Role      models.Role
	AccessKey string
}

// Signup creates a single user, a group leader opening a new group, or a
// member joining an existing group through its leader's access key.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" || input.UserType == "" {
		return nil, invalid("Please provide name, email, password, and user type")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, invalid("Password must be at least %d characters", constants.MinPasswordLength)
	}
	if input.UserType != models.UserTypeSingle && input.UserType != models.UserTypeGroup {
		return nil, invalid("Invalid user type")
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		UserType: input.UserType,
		Role:     models.RoleNone,
	}

	if input.UserType == models.UserTypeGroup {
		if err := s.assignGroup(user, input.Role, input.AccessKey); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(user)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// duplicateUserError names the unique column a concurrent signup claimed
// between the pre-checks and the insert.
func (s *AuthService) duplicateUserError(user *models.User) error {
	if _, err := s.userRepo.FindByEmail(user.Email); err == nil {
		return ErrEmailTaken
	}
	if user.AccessKey != nil {
		return ErrAccessKeyInUse
	}
	return ErrEmailTaken
}

func (s *AuthService) assignGroup(user *models.User, role models.Role, accessKey string) error {
	switch role {
	case models.RoleLeader:
		key := utils.NormalizeAccessKey(accessKey)
		if key == "" {
			generated, err := utils.GenerateAccessKey()
			if err != nil {
				return fmt.Errorf("failed to generate access key: %w", err)
			}
			key = generated
		}

		if _, err := s.userRepo.FindByAccessKey(key); err == nil {
			return ErrAccessKeyInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check access key: %w", err)
		}

		user.Role = models.RoleLeader
		user.AccessKey = &key
		user.GroupID = &key

	case models.RoleMember:
		key := utils.NormalizeAccessKey(accessKey)
		if key == "" {
			return ErrAccessKeyRequired
		}

		leader, err := s.userRepo.FindLeaderByAccessKey(key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidAccessKey
			}
			return fmt.Errorf("failed to find group leader: %w", err)
		}

		user.Role = models.RoleMember
		user.GroupID = leader.GroupID

	default:
		return invalid("Please specify role (leader or member) for group user")
	}

	return nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, invalid("Please provide email and password")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.VerifyCredential(user, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// VerifyCredential reports whether plaintext matches the user's stored hash.
func (s *AuthService) VerifyCredential(user *models.User, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns every user ordered by group and role.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
