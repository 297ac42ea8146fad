package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// ListTransactionsInput selects the owner's transactions.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Type   *entity.TransactionType
	Limit  int
}

// ListTransactionsOutput is a query snapshot: the selected rows and the
// summary of every transaction the owner has, regardless of the selection.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Summary      valueobject.LedgerSummary
}

// ListTransactionsUseCase queries transactions by owner.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute returns the owner's transactions, newest first, with the summary
// of the whole collection.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter := entity.TransactionFilter{
		Type:  input.Type,
		Limit: input.Limit,
	}
	transactions, err := uc.transactionRepo.FindByOwner(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	all := transactions
	if filter.Type != nil || filter.Limit > 0 {
		all, err = uc.transactionRepo.FindByOwner(ctx, input.UserID, entity.TransactionFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
		}
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Summary:      SummarizeTransactions(all),
	}, nil
}

// SummarizeTransactions reduces stored transactions into a ledger summary.
func SummarizeTransactions(transactions []*entity.Transaction) valueobject.LedgerSummary {
	records := make([]valueobject.LedgerRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, valueobject.LedgerRecord{Amount: t.Amount, Type: string(t.Type)})
	}
	return valueobject.Summarize(records)
}
