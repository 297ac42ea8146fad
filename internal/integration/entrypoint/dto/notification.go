package dto

import (
	"time"

	"github.com/ecooy/backend/internal/application/usecase/notification"
	"github.com/ecooy/backend/internal/domain/entity"
)

// NotificationResponse represents a single notification in API responses.
type NotificationResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// NotificationListResponse is one notifications query snapshot.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int64                  `json:"unread"`
}

// MarkAllReadResponse reports how many notifications changed.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse converts a domain Notification to its DTO.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID.String(),
		Type:    string(n.Type),
		Title:   n.Title,
		Message: n.Message,
		Date:    n.Date,
		Read:    n.IsRead,
	}
}

// ToNotificationListResponse converts a list snapshot to its DTO.
func ToNotificationListResponse(output *notification.ListNotificationsOutput) NotificationListResponse {
	items := make([]NotificationResponse, 0, len(output.Notifications))
	for _, n := range output.Notifications {
		items = append(items, ToNotificationResponse(n))
	}
	return NotificationListResponse{
		Notifications: items,
		Unread:        output.Unread,
	}
}
