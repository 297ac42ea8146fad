package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies notifications shown to the user.
type NotificationType string

const (
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeGoal    NotificationType = "goal"
	NotificationTypeTip     NotificationType = "tip"
)

// IsValid reports whether t is a known notification type.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypePayment, NotificationTypeGoal, NotificationTypeTip:
		return true
	}
	return false
}

// Notification is an in-app message owned by a user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Date      time.Time
	IsRead    bool
	CreatedAt time.Time
}

// NewNotification creates an unread notification dated now.
func NewNotification(userID uuid.UUID, notificationType NotificationType, title, message string) *Notification {
	now := time.Now().UTC()
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Date:      now,
		CreatedAt: now,
	}
}
