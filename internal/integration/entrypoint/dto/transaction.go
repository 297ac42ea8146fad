package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/usecase/transaction"
	"github.com/ecooy/backend/internal/domain/entity"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Either amount or display_amount must be sent.
type CreateTransactionRequest struct {
	Description   string           `json:"description" binding:"required"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DisplayAmount *string          `json:"display_amount,omitempty"`
	Type          string           `json:"type" binding:"required,oneof=income expense"`
	Category      string           `json:"category" binding:"required"`
	Date          string           `json:"date,omitempty"`
}

// UpdateTransactionRequest represents the request body for a partial update.
type UpdateTransactionRequest struct {
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DisplayAmount *string          `json:"display_amount,omitempty"`
	Type          *string          `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	Category      *string          `json:"category,omitempty"`
	Date          *string          `json:"date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"uid"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	DisplayAmount string    `json:"display_amount"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SummaryResponse represents a ledger summary in API responses.
type SummaryResponse struct {
	Balance  string `json:"balance"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// TransactionListResponse is one transactions query snapshot.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Summary      SummaryResponse       `json:"summary"`
}

// CategoriesResponse lists the preset categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Default    string   `json:"default"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		UserID:        t.UserID.String(),
		Description:   t.Description,
		Amount:        formatAmount(t.Amount),
		DisplayAmount: valueobject.FormatCurrency(t.Amount),
		Type:          string(t.Type),
		Category:      t.Category,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToSummaryResponse converts a LedgerSummary to a SummaryResponse DTO.
func ToSummaryResponse(summary valueobject.LedgerSummary) SummaryResponse {
	return SummaryResponse{
		Balance:  formatAmount(summary.Balance),
		Income:   formatAmount(summary.Income),
		Expenses: formatAmount(summary.Expenses),
	}
}

// ToTransactionListResponse converts a list snapshot to its DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(output.Transactions))
	for _, t := range output.Transactions {
		items = append(items, ToTransactionResponse(t))
	}
	return TransactionListResponse{
		Transactions: items,
		Summary:      ToSummaryResponse(output.Summary),
	}
}
