package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

const (
	commentNotificationTitle = "New Comment"
	defaultTaskName          = "a task"
)

// CommentService handles comment business logic and the notifications a new
// comment fans out to.
type CommentService struct {
	comments      repository.CommentRepository
	boards        repository.BoardRepository
	users         repository.UserRepository
	notifications *NotificationService
	logger        *slog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	comments repository.CommentRepository,
	boards repository.BoardRepository,
	users repository.UserRepository,
	notifications *NotificationService,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments:      comments,
		boards:        boards,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateCommentInput represents input for creating a comment
type CreateCommentInput struct {
	TaskKey     string
	Owner       models.BoardOwner
	Text        string
	AuthorID    uint64
	AuthorName  string
	AuthorEmail string
	// AssignedTo is the client's view of the assignee, used when the stored
	// task has none.
	AssignedTo *uint64
	// TaskTitle is used when the task cannot be found on the board.
	TaskTitle string
}

// ListForTask returns the comments of a task on one board, oldest first.
func (s *CommentService) ListForTask(taskKey string, owner models.BoardOwner) ([]models.Comment, error) {
	if strings.TrimSpace(owner.ID) == "" || owner.Type == "" {
		return nil, invalid("Board owner information required")
	}
	comments, err := s.comments.ListForTask(taskKey, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Create stores a comment and notifies at most one other group user about it.
func (s *CommentService) Create(input CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(input.Text)
	authorName := strings.TrimSpace(input.AuthorName)
	if text == "" || input.AuthorID == 0 || authorName == "" {
		return nil, invalid("Missing required fields: text, authorId, authorName")
	}
	if strings.TrimSpace(input.Owner.ID) == "" || input.Owner.Type == "" {
		return nil, invalid("Missing required fields: boardOwnerId, boardOwnerType")
	}
	if !input.Owner.Type.Valid() {
		return nil, invalid("Invalid board owner type %q", input.Owner.Type)
	}

	comment := &models.Comment{
		TaskKey:        input.TaskKey,
		BoardOwnerID:   input.Owner.ID,
		BoardOwnerType: input.Owner.Type,
		Text:           text,
		AuthorID:       input.AuthorID,
		AuthorName:     authorName,
		AuthorEmail:    input.AuthorEmail,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.notifyCommentRecipient(comment, input)
	return comment, nil
}

type taskContext struct {
	title      string
	column     string
	assignedTo *uint64
}

func (s *CommentService) lookupTask(input CreateCommentInput) taskContext {
	ctx := taskContext{title: defaultTaskName, assignedTo: input.AssignedTo}
	if input.TaskTitle != "" {
		ctx.title = input.TaskTitle
	}

	board, err := s.boards.FindByOwner(input.Owner)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("failed to load board for comment", "owner_id", input.Owner.ID, "error", err)
		}
		return ctx
	}

	for _, column := range board.Columns {
		for _, task := range column.Tasks {
			if task.Key != input.TaskKey {
				continue
			}
			if task.Title != "" {
				ctx.title = task.Title
			}
			ctx.column = column.Title
			if task.AssignedTo != nil {
				ctx.assignedTo = task.AssignedTo
			}
			return ctx
		}
	}
	return ctx
}

// commentRecipient picks who hears about a comment: a member's comment goes
// to the group leader; a leader's comment goes to the task's assignee when
// that user is currently a member.
func (s *CommentService) commentRecipient(author *models.User, assignedTo *uint64) (*models.User, error) {
	if !author.InGroup() {
		return nil, nil
	}

	switch author.Role {
	case models.RoleMember:
		leader, err := s.users.FindLeaderByGroupID(*author.GroupID)
		if err != nil {
			return nil, err
		}
		return leader, nil

	case models.RoleLeader:
		if assignedTo == nil {
			return nil, nil
		}
		assignee, err := s.users.FindByID(*assignedTo)
		if err != nil {
			return nil, err
		}
		if assignee.Role != models.RoleMember {
			return nil, nil
		}
		return assignee, nil
	}

	return nil, nil
}

func (s *CommentService) notifyCommentRecipient(comment *models.Comment, input CreateCommentInput) {
	author, err := s.users.FindByID(comment.AuthorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load comment author", "author_id", comment.AuthorID, "error", err)
		}
		return
	}

	task := s.lookupTask(input)
	recipient, err := s.commentRecipient(author, task.assignedTo)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to resolve comment recipient", "comment_id", comment.ID, "error", err)
		}
		return
	}
	if recipient == nil || recipient.ID == author.ID {
		return
	}

	outcome := s.notifications.Deliver(NotificationInput{
		UserID:       recipient.ID,
		Type:         models.NotificationCommentAdded,
		Title:        commentNotificationTitle,
		Message:      fmt.Sprintf("%s commented on \"%s\" in %s", comment.AuthorName, task.title, task.column),
		TaskKey:      comment.TaskKey,
		TaskTitle:    task.title,
		FromUserID:   author.ID,
		FromUserName: comment.AuthorName,
	})
	if outcome.Err != nil {
		return
	}
	s.logger.Info("comment notification sent",
		"comment_id", comment.ID, "recipient_id", recipient.ID, "role", recipient.Role)
}

// CleanupOrphaned deletes comments that carry no board ownership.
func (s *CommentService) CleanupOrphaned() (int64, error) {
	deleted, err := s.comments.DeleteOrphaned()
	if err != nil {
		return 0, fmt.Errorf("failed to clean up comments: %w", err)
	}
	s.logger.Info("orphaned comments cleaned up", "deleted", deleted)
	return deleted, nil
}
