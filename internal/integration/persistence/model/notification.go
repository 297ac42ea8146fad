package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(10);not null"`
	Title     string    `gorm:"type:varchar(150);not null"`
	Message   string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"not null;index"`
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() (*entity.Notification, error) {
	notificationType := entity.NotificationType(m.Type)
	if !notificationType.IsValid() {
		return nil, domainerror.NewMalformedDocumentError(collectionNotifications, m.ID.String(), "unknown type "+m.Type)
	}

	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      notificationType,
		Title:     m.Title,
		Message:   m.Message,
		Date:      m.Date,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}, nil
}

// NotificationModelFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationModelFromEntity(n *entity.Notification) *NotificationModel {
	return &NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Date:      n.Date,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
