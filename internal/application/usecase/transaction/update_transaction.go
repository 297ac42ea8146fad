package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

// UpdateTransactionInput holds the fields to change. Nil fields are left as they are.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	Category      *string
	Date          *string
}

// UpdateTransactionUseCase handles partial transaction updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	publisher       adapter.ChangePublisher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	publisher adapter.ChangePublisher,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

// Execute applies the update with the same rules as creation.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.Transaction, error) {
	transaction, err := findOwned(func(id uuid.UUID) (*entity.Transaction, error) {
		return uc.transactionRepo.FindByID(ctx, id)
	}, input.TransactionID, input.UserID, "update")
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		transaction.Description = strings.TrimSpace(*input.Description)
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *input.Amount
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		transaction.Type = *input.Type
	}

	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		transaction.Category = strings.TrimSpace(*input.Category)
	}

	if input.Date != nil && strings.TrimSpace(*input.Date) != "" {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		transaction.Date = strings.TrimSpace(*input.Date)
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionTransactions, entity.OperationUpdated, transaction.ID.String(), transaction.UserID)

	return transaction, nil
}
