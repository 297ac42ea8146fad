package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// WatchNotificationsUseCase opens a live query over the owner's notifications.
type WatchNotificationsUseCase struct {
	list       *ListNotificationsUseCase
	subscriber adapter.ChangeSubscriber
}

// NewWatchNotificationsUseCase creates a new WatchNotificationsUseCase instance.
func NewWatchNotificationsUseCase(list *ListNotificationsUseCase, subscriber adapter.ChangeSubscriber) *WatchNotificationsUseCase {
	return &WatchNotificationsUseCase{
		list:       list,
		subscriber: subscriber,
	}
}

// Execute returns a handle streaming every notification with the unread count.
func (uc *WatchNotificationsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*livequery.Handle[*ListNotificationsOutput], error) {
	handle, err := livequery.Open(ctx, uc.subscriber, livequery.Query[*ListNotificationsOutput]{
		Collection: entity.CollectionNotifications,
		OwnerID:    userID,
		Load: func(ctx context.Context, _ *entity.ChangeEvent) (*ListNotificationsOutput, error) {
			return uc.list.Execute(ctx, userID, false)
		},
	})
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSubscriptionUnavailable,
			"notifications subscription unavailable",
			err,
		)
	}
	return handle, nil
}
