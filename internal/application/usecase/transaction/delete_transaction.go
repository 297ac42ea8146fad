package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

// DeleteTransactionUseCase removes a transaction owned by the caller.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	publisher       adapter.ChangePublisher
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	publisher adapter.ChangePublisher,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

// Execute performs the deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, transactionID, userID uuid.UUID) error {
	transaction, err := findOwned(func(id uuid.UUID) (*entity.Transaction, error) {
		return uc.transactionRepo.FindByID(ctx, id)
	}, transactionID, userID, "delete")
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, transaction.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionTransactions, entity.OperationDeleted, transaction.ID.String(), transaction.UserID)

	return nil
}
