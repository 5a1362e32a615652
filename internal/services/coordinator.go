package services

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/yukikurage/kanban-board-api/internal/metrics"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
)

// Coordinator keeps comments and notifications consistent with board shape.
// Comments and notifications reference tasks by key only, so every time a
// task leaves a board the rows pointing at it are removed here.
type Coordinator struct {
	comments      repository.CommentRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
	metrics       metrics.Recorder
	logger        *slog.Logger
}

// NewCoordinator creates a new Coordinator
func NewCoordinator(
	comments repository.CommentRepository,
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		comments:      comments,
		notifications: notifications,
		users:         users,
		metrics:       recorder,
		logger:        logger,
	}
}

// TasksRemoved deletes the comments of the removed tasks on the owner's board,
// then every notification referencing them. Failures are logged and counted.
func (c *Coordinator) TasksRemoved(owner models.BoardOwner, taskKeys []string) {
	if len(taskKeys) == 0 {
		return
	}

	deleted, err := c.comments.DeleteForTasks(owner, taskKeys)
	if err != nil {
		c.metrics.RecordCascadeFailure(metrics.StepComments)
		c.logger.Error("cascade comment deletion failed",
			"owner_id", owner.ID, "owner_type", owner.Type, "tasks", taskKeys, "error", err)
	} else {
		c.metrics.RecordCascadeDeleted(metrics.StepComments, deleted)
	}

	deleted, err = c.notifications.DeleteForTasks(taskKeys)
	if err != nil {
		c.metrics.RecordCascadeFailure(metrics.StepNotifications)
		c.logger.Error("cascade notification deletion failed", "tasks", taskKeys, "error", err)
		return
	}
	c.metrics.RecordCascadeDeleted(metrics.StepNotifications, deleted)

	c.logger.Info("cascade deletion complete",
		"owner_id", owner.ID, "owner_type", owner.Type, "task_count", len(taskKeys))
}

// BoardCleared deletes every comment of the owner's board and every
// notification of the owner's users. A non-nil error means the board must
// not be cleared.
func (c *Coordinator) BoardCleared(owner models.BoardOwner) error {
	deleted, err := c.comments.DeleteForOwner(owner)
	if err != nil {
		c.metrics.RecordCascadeFailure(metrics.StepComments)
		return fmt.Errorf("failed to delete board comments: %w", err)
	}
	c.metrics.RecordCascadeDeleted(metrics.StepComments, deleted)

	recipients, err := c.ownerUserIDs(owner)
	if err != nil {
		c.metrics.RecordCascadeFailure(metrics.StepNotifications)
		return err
	}

	deleted, err = c.notifications.DeleteForUsers(recipients)
	if err != nil {
		c.metrics.RecordCascadeFailure(metrics.StepNotifications)
		return fmt.Errorf("failed to delete owner notifications: %w", err)
	}
	c.metrics.RecordCascadeDeleted(metrics.StepNotifications, deleted)

	c.logger.Info("board cascade complete",
		"owner_id", owner.ID, "owner_type", owner.Type, "recipients", len(recipients))
	return nil
}

// ownerUserIDs resolves group membership at call time.
func (c *Coordinator) ownerUserIDs(owner models.BoardOwner) ([]uint64, error) {
	if owner.Type == models.OwnerTypeUser {
		id, err := strconv.ParseUint(owner.ID, 10, 64)
		if err != nil {
			// a personal board of a non-numeric owner has no recipients
			return nil, nil
		}
		return []uint64{id}, nil
	}

	users, err := c.users.FindByGroupID(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group users: %w", err)
	}
	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
