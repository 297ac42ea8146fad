package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// TipRequest carries the financial snapshot a tip is based on.
type TipRequest struct {
	DisplayName        string
	Income             decimal.Decimal
	Expenses           decimal.Decimal
	Balance            decimal.Decimal
	Salary             *decimal.Decimal
	FixedExpenses      *decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
	OpenGoals          []string
}

// Tip is a short piece of financial advice.
type Tip struct {
	Title   string
	Message string
}

// TipGenerator produces personalised financial tips.
type TipGenerator interface {
	// GenerateTip returns a tip for the given snapshot.
	GenerateTip(ctx context.Context, request *TipRequest) (*Tip, error)

	// IsAvailable checks if the generator is properly configured.
	IsAvailable() bool
}
