package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/metrics"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
)

var ErrInvalidNotificationType = errors.New("invalid notification type")

// NotificationService handles notification business logic
type NotificationService struct {
	notifications repository.NotificationRepository
	metrics       metrics.Recorder
	logger        *slog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repository.NotificationRepository, recorder metrics.Recorder, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		metrics:       recorder,
		logger:        logger,
	}
}

// NotificationInput represents input for delivering a notification
type NotificationInput struct {
	UserID       uint64
	Type         models.NotificationType
	Title        string
	Message      string
	TaskKey      string
	TaskTitle    string
	FromUserID   uint64
	FromUserName string
}

// DeliveryOutcome reports what happened to one notification.
type DeliveryOutcome struct {
	Delivered    bool
	Notification *models.Notification
	Err          error
}

// Deliver stores a notification. Failures are logged, counted and returned
// in the outcome.
func (s *NotificationService) Deliver(input NotificationInput) DeliveryOutcome {
	if !input.Type.Valid() {
		return s.failed(input, fmt.Errorf("%w: %q", ErrInvalidNotificationType, input.Type))
	}

	notification := &models.Notification{
		UserID:       input.UserID,
		Type:         input.Type,
		Title:        input.Title,
		Message:      input.Message,
		TaskTitle:    input.TaskTitle,
		FromUserName: input.FromUserName,
	}
	if input.TaskKey != "" {
		key := input.TaskKey
		notification.TaskKey = &key
	}
	if input.FromUserID != 0 {
		from := input.FromUserID
		notification.FromUserID = &from
	}

	if err := s.notifications.Create(notification); err != nil {
		return s.failed(input, fmt.Errorf("failed to create notification: %w", err))
	}

	s.metrics.RecordNotificationDelivered()
	s.logger.Info("notification delivered",
		"notification_id", notification.ID, "user_id", input.UserID, "type", input.Type)
	return DeliveryOutcome{Delivered: true, Notification: notification}
}

func (s *NotificationService) failed(input NotificationInput, err error) DeliveryOutcome {
	s.metrics.RecordNotificationFailed()
	s.logger.Error("notification delivery failed", "user_id", input.UserID, "type", input.Type, "error", err)
	return DeliveryOutcome{Err: err}
}

// ListForUser returns the user's newest notifications
func (s *NotificationService) ListForUser(userID uint64) ([]models.Notification, error) {
	notifications, err := s.notifications.ListForUser(userID, constants.NotificationFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read
func (s *NotificationService) MarkRead(id uint64) error {
	if err := s.notifications.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllRead flags every notification of a user as read
func (s *NotificationService) MarkAllRead(userID uint64) error {
	if _, err := s.notifications.MarkAllRead(userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}
