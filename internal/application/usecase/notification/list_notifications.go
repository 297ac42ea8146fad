// Package notification contains in-app notification use cases.
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// ListNotificationsOutput is the owner's notifications plus the unread count.
type ListNotificationsOutput struct {
	Notifications []*entity.Notification
	Unread        int64
}

// ListNotificationsUseCase lists the caller's notifications, newest first.
type ListNotificationsUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notificationRepo adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo}
}

// Execute returns the notifications. unreadOnly filters out read ones.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*ListNotificationsOutput, error) {
	notifications, err := uc.notificationRepo.FindByOwner(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &ListNotificationsOutput{
		Notifications: notifications,
		Unread:        unread,
	}, nil
}

// MarkReadUseCase marks one notification as read.
type MarkReadUseCase struct {
	notificationRepo adapter.NotificationRepository
	publisher        adapter.ChangePublisher
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(notificationRepo adapter.NotificationRepository, publisher adapter.ChangePublisher) *MarkReadUseCase {
	return &MarkReadUseCase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Execute marks the notification read. Notifications of other users look missing.
func (uc *MarkReadUseCase) Execute(ctx context.Context, notificationID, userID uuid.UUID) error {
	notification, err := uc.notificationRepo.FindByID(ctx, notificationID)
	if err != nil && !errors.Is(err, domainerror.ErrNotificationNotFound) {
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if err != nil || notification.UserID != userID {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeNotificationNotFound,
			"notification not found",
			domainerror.ErrNotificationNotFound,
		)
	}

	if notification.IsRead {
		return nil
	}

	if err := uc.notificationRepo.MarkRead(ctx, notification.ID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	publishNotificationChange(ctx, uc.publisher, entity.OperationUpdated, notification.ID.String(), userID)
	return nil
}

// MarkAllReadUseCase marks every unread notification of the caller as read.
type MarkAllReadUseCase struct {
	notificationRepo adapter.NotificationRepository
	publisher        adapter.ChangePublisher
}

// NewMarkAllReadUseCase creates a new MarkAllReadUseCase instance.
func NewMarkAllReadUseCase(notificationRepo adapter.NotificationRepository, publisher adapter.ChangePublisher) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Execute returns how many notifications changed.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := uc.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	if updated > 0 {
		publishNotificationChange(ctx, uc.publisher, entity.OperationUpdated, "", userID)
	}
	return updated, nil
}
