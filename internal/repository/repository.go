package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByAccessKey finds the user holding an access key
	FindByAccessKey(accessKey string) (*models.User, error)

	// FindLeaderByAccessKey finds the group leader holding an access key
	FindLeaderByAccessKey(accessKey string) (*models.User, error)

	// FindLeaderByGroupID finds the leader of a group
	FindLeaderByGroupID(groupID string) (*models.User, error)

	// FindByGroupID lists every user of a group, leader included
	FindByGroupID(groupID string) ([]models.User, error)

	// ListGroupMembers lists leaders and members of a group except one user
	ListGroupMembers(groupID string, excludeUserID uint64) ([]models.User, error)

	// List lists all users ordered by group and role
	List() ([]models.User, error)

	// DeleteByEmails permanently deletes the users with the given emails
	DeleteByEmails(emails []string) (int64, error)
}

// BoardRepository defines the interface for board, column and task data access.
// The board is a document: columns and tasks are only reachable through it.
type BoardRepository interface {
	// FindByOwner finds a board with its ordered columns and tasks
	FindByOwner(owner models.BoardOwner) (*models.Board, error)

	// Create creates a new board
	Create(board *models.Board) error

	// ReplaceColumns swaps the complete column sequence in one transaction
	ReplaceColumns(boardID uint64, name string, columns []models.Column) error

	// ClearColumns removes every column and task of a board
	ClearColumns(boardID uint64) error

	// FindColumn finds a column by its client key within a board
	FindColumn(boardID uint64, key string) (*models.Column, error)


	// CreateColumn appends a column (with nested tasks) to a board
	CreateColumn(column *models.Column) error

	// DeleteColumn deletes a column and its tasks
	DeleteColumn(columnID uint64) error

	// FindTask finds a task by its client key within a column
	FindTask(columnID uint64, key string) (*models.Task, error)

	// TaskKeyExists reports whether any column of the board holds the key
	TaskKeyExists(boardID uint64, key string) (bool, error)


	// CreateTask creates a task inside a column
	CreateTask(task *models.Task) error

	// UpdateTask saves every field of a task
	UpdateTask(task *models.Task) error

	// DeleteTask deletes a task
	DeleteTask(taskID uint64) error

	// UpdateName renames a board
	UpdateName(boardID uint64, name string) error

	// Touch bumps the board's updated_at timestamp
	Touch(boardID uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// ListForTask lists the comments of a task on one board, oldest first
	ListForTask(taskKey string, owner models.BoardOwner) ([]models.Comment, error)

	// DeleteForTasks deletes the comments of the given tasks on one board
	DeleteForTasks(owner models.BoardOwner, taskKeys []string) (int64, error)

	// DeleteForOwner deletes every comment of a board
	DeleteForOwner(owner models.BoardOwner) (int64, error)

	// DeleteOrphaned deletes comments that carry no board ownership
	DeleteOrphaned() (int64, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// ListForUser lists a user's newest notifications
	ListForUser(userID uint64, limit int) ([]models.Notification, error)

	// MarkRead flags one notification as read
	MarkRead(id uint64) error

	// MarkAllRead flags every unread notification of a user as read
	MarkAllRead(userID uint64) (int64, error)

	// DeleteForTasks deletes notifications referencing any of the tasks
	DeleteForTasks(taskKeys []string) (int64, error)

	// DeleteForUsers deletes every notification addressed to the users
	DeleteForUsers(userIDs []uint64) (int64, error)
}
