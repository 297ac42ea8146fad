// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of a ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Field limits for transactions.
const (
	MaxDescriptionLength = 255
	MaxCategoryLength    = 60
	MaxDateLength        = 32
)

// TransactionDateLayout is used when a transaction is created without a date.
const TransactionDateLayout = "2006-01-02"

// PresetCategories are the categories offered by default. Any other non-blank
// label is accepted as a custom category.
var PresetCategories = []string{
	"Geral",
	"Alimentação",
	"Lazer",
	"Fixo",
	"Saúde",
	"Transporte",
}

// DefaultCategory is used by clients that do not pick a category explicitly.
const DefaultCategory = "Geral"

// IsPresetCategory reports whether the category is one of the presets.
func IsPresetCategory(category string) bool {
	for _, preset := range PresetCategories {
		if preset == category {
			return true
		}
	}
	return false
}

// Transaction represents a single income or expense owned by a user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive, Type carries the sign
	Type        TransactionType
	Category    string
	Date        string // Display date as entered by the user
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
// An empty date defaults to the current day.
func NewTransaction(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category string,
	date string,
) *Transaction {
	now := time.Now().UTC()
	if strings.TrimSpace(date) == "" {
		date = now.Format(TransactionDateLayout)
	}

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        transactionType,
		Category:    strings.TrimSpace(category),
		Date:        strings.TrimSpace(date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsIncome returns true for income transactions.
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// SignedAmount returns the amount as it affects the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TransactionFilter narrows a query by owner.
type TransactionFilter struct {
	Type  *TransactionType
	Limit int
}
