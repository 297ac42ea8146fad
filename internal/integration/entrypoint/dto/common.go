// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/valueobject"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResolveAmount picks the numeric amount when present and otherwise parses
// the pt-BR display string. ok is false when neither was sent.
func ResolveAmount(amount *decimal.Decimal, display *string) (decimal.Decimal, bool) {
	if amount != nil {
		return *amount, true
	}
	if display != nil {
		return valueobject.ParseDecimalFromDisplay(*display), true
	}
	return decimal.Zero, false
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func formatOptionalAmount(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := formatAmount(*amount)
	return &s
}
