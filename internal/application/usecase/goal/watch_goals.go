package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// WatchGoalsUseCase opens a live query over the owner's goals.
type WatchGoalsUseCase struct {
	list       *ListGoalsUseCase
	subscriber adapter.ChangeSubscriber
}

// NewWatchGoalsUseCase creates a new WatchGoalsUseCase instance.
func NewWatchGoalsUseCase(list *ListGoalsUseCase, subscriber adapter.ChangeSubscriber) *WatchGoalsUseCase {
	return &WatchGoalsUseCase{
		list:       list,
		subscriber: subscriber,
	}
}

// Execute returns a handle that re-lists the goals on every change.
func (uc *WatchGoalsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*livequery.Handle[*ListGoalsOutput], error) {
	handle, err := livequery.Open(ctx, uc.subscriber, livequery.Query[*ListGoalsOutput]{
		Collection: entity.CollectionGoals,
		OwnerID:    userID,
		Load: func(ctx context.Context, _ *entity.ChangeEvent) (*ListGoalsOutput, error) {
			return uc.list.Execute(ctx, userID)
		},
	})
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSubscriptionUnavailable,
			"goals subscription unavailable",
			err,
		)
	}
	return handle, nil
}
