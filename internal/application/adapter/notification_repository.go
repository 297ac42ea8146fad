package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
)

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByOwner(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.Notification, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// ExistsSince reports whether the user already got a notification of the
	// given type and title at or after since.
	ExistsSince(ctx context.Context, userID uuid.UUID, notificationType entity.NotificationType, title string, since time.Time) (bool, error)
}
