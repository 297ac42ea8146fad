// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxGoalNameLength bounds the goal name.
const MaxGoalNameLength = 100

// Goal represents a savings target owned by a user.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Category      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new Goal with no savings yet.
func NewGoal(userID uuid.UUID, name, category string, targetAmount decimal.Decimal, deadline *string) *Goal {
	now := time.Now().UTC()
	if category == "" {
		category = DefaultCategory
	}

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Category:      category,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsReached returns true once the saved amount covers the target.
func (g *Goal) IsReached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Deposit adds amount to the saved total and reports whether this deposit
// is the one that reached the target. The caller validates amount > 0.
func (g *Goal) Deposit(amount decimal.Decimal) (reachedNow bool) {
	wasReached := g.IsReached()
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = time.Now().UTC()
	return !wasReached && g.IsReached()
}

// Progress returns the saved percentage, capped at 100.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct
}

// Remaining returns how much is still missing, never negative.
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
