package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// WatchTransactionsUseCase opens a live query over the owner's transactions.
type WatchTransactionsUseCase struct {
	list       *ListTransactionsUseCase
	subscriber adapter.ChangeSubscriber
}

// NewWatchTransactionsUseCase creates a new WatchTransactionsUseCase instance.
func NewWatchTransactionsUseCase(list *ListTransactionsUseCase, subscriber adapter.ChangeSubscriber) *WatchTransactionsUseCase {
	return &WatchTransactionsUseCase{
		list:       list,
		subscriber: subscriber,
	}
}

// Execute returns a handle whose snapshots are full query results with summary.
func (uc *WatchTransactionsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*livequery.Handle[*ListTransactionsOutput], error) {
	handle, err := livequery.Open(ctx, uc.subscriber, livequery.Query[*ListTransactionsOutput]{
		Collection: entity.CollectionTransactions,
		OwnerID:    userID,
		Load: func(ctx context.Context, _ *entity.ChangeEvent) (*ListTransactionsOutput, error) {
			return uc.list.Execute(ctx, ListTransactionsInput{UserID: userID})
		},
	})
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSubscriptionUnavailable,
			"transactions subscription unavailable",
			err,
		)
	}
	return handle, nil
}
