package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/persistence/model"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance.
func NewNotificationRepository(db *gorm.DB) adapter.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(model.NotificationModelFromEntity(notification)).Error
}

func (r *notificationRepository) FindByOwner(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var models []model.NotificationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, 0, len(models))
	for i := range models {
		notification, err := models[i].ToEntity()
		if err != nil {
			slog.Warn("skipping malformed notification", "error", err)
			continue
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notificationModel model.NotificationModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&notificationModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNotificationNotFound
		}
		return nil, result.Error
	}
	return notificationModel.ToEntity()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) ExistsSince(ctx context.Context, userID uuid.UUID, notificationType entity.NotificationType, title string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND type = ? AND title = ? AND date >= ?", userID, string(notificationType), title, since.UTC()).
		Count(&count).Error
	return count > 0, err
}
