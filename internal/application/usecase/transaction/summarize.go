package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// GetSummaryUseCase computes the balance of every transaction a user owns.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{transactionRepo: transactionRepo}
}

// Execute returns the owner's ledger summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, userID uuid.UUID) (valueobject.LedgerSummary, error) {
	transactions, err := uc.transactionRepo.FindByOwner(ctx, userID, entity.TransactionFilter{})
	if err != nil {
		return valueobject.LedgerSummary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return SummarizeTransactions(transactions), nil
}

// SummarizeRecordsUseCase reduces an arbitrary batch of loosely typed records.
type SummarizeRecordsUseCase struct{}

// NewSummarizeRecordsUseCase creates a new SummarizeRecordsUseCase instance.
func NewSummarizeRecordsUseCase() *SummarizeRecordsUseCase {
	return &SummarizeRecordsUseCase{}
}

// Execute never fails: malformed amounts count as zero and unknown kinds as expenses.
func (uc *SummarizeRecordsUseCase) Execute(records []valueobject.LedgerRecord) valueobject.LedgerSummary {
	return valueobject.Summarize(records)
}
