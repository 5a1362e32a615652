package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/logger"
	"github.com/yukikurage/kanban-board-api/internal/metrics"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/testutil"
	"gorm.io/gorm"
)

type serviceEnv struct {
	db            *gorm.DB
	users         repository.UserRepository
	boards        repository.BoardRepository
	comments      repository.CommentRepository
	notifications repository.NotificationRepository

	auth         *AuthService
	group        *GroupService
	board        *BoardService
	comment      *CommentService
	notification *NotificationService
}

func newServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := logger.Discard()
	recorder := metrics.Nop{}

	env := serviceEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		boards:        repository.NewBoardRepository(db),
		comments:      repository.NewCommentRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}

	coordinator := NewCoordinator(env.comments, env.notifications, env.users, recorder, log)
	env.auth = NewAuthService(env.users)
	env.group = NewGroupService(env.users)
	env.board = NewBoardService(env.boards, coordinator, log)
	env.notification = NewNotificationService(env.notifications, recorder, log)
	env.comment = NewCommentService(env.comments, env.boards, env.users, env.notification, log)
	return env
}

// createUser stores a user without going through bcrypt.
func (e serviceEnv) createUser(t *testing.T, name string, userType models.UserType, role models.Role, groupID string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		UserType:     userType,
		Role:         role,
	}
	if groupID != "" {
		user.GroupID = &groupID
		if role == models.RoleLeader {
			key := groupID
			user.AccessKey = &key
		}
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func ptr[T any](v T) *T {
	return &v
}
