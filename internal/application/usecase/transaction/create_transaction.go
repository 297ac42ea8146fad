package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

// CreateTransactionInput represents the transaction form.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Category    string
	Date        string
}

// CreateTransactionUseCase records a new income or expense.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	publisher       adapter.ChangePublisher
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	publisher adapter.ChangePublisher,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

// Execute validates the form and stores the transaction.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Description,
		input.Amount,
		input.Type,
		input.Category,
		input.Date,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionTransactions, entity.OperationCreated, transaction.ID.String(), transaction.UserID)

	return transaction, nil
}
