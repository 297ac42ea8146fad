package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// GetTransactionUseCase reads a single transaction owned by the caller.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute returns the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, transactionID, userID uuid.UUID) (*entity.Transaction, error) {
	return findOwned(func(id uuid.UUID) (*entity.Transaction, error) {
		return uc.transactionRepo.FindByID(ctx, id)
	}, transactionID, userID, "read")
}
