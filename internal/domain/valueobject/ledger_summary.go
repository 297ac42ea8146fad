package valueobject

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeKind is the only record kind that counts as income. Every other
// kind, including unknown ones, is summed as an expense.
const IncomeKind = "income"

// LedgerRecord is the minimal shape the reducer reads. Amount is loosely
// typed because records may come from clients or legacy rows.
type LedgerRecord struct {
	Amount any    `json:"amount"`
	Type   string `json:"type"`
}

// UnmarshalJSON accepts any JSON value. A kind that is not a string and an
// element that is not an object both decode to an empty kind, which the
// reducer sums as an expense.
func (r *LedgerRecord) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return err
	}

	*r = LedgerRecord{}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	r.Amount = fields["amount"]
	if kind, ok := fields["type"].(string); ok {
		r.Type = kind
	}
	return nil
}

// LedgerSummary is the derived balance of a set of records.
type LedgerSummary struct {
	Balance  decimal.Decimal `json:"balance"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// NewLedgerSummary returns the all-zero summary.
func NewLedgerSummary() LedgerSummary {
	return LedgerSummary{
		Balance:  decimal.Zero,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
}

// Add folds a single record into the summary.
func (s LedgerSummary) Add(record LedgerRecord) LedgerSummary {
	amount := CoerceAmount(record.Amount)
	if record.Type == IncomeKind {
		s.Income = s.Income.Add(amount)
		s.Balance = s.Balance.Add(amount)
		return s
	}
	s.Expenses = s.Expenses.Add(amount)
	s.Balance = s.Balance.Sub(amount)
	return s
}

// Summarize reduces records into income, expenses and balance.
// It never fails and the result does not depend on record order.
func Summarize(records []LedgerRecord) LedgerSummary {
	summary := NewLedgerSummary()
	for _, record := range records {
		summary = summary.Add(record)
	}
	return summary
}

// CoerceAmount converts a loosely typed amount to a decimal the way a
// numeric cast would: missing, blank or non-numeric values become zero.
func CoerceAmount(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case json.Number:
		return coerceString(v.String())
	case string:
		return coerceString(v)
	case bool:
		if v {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	case float64:
		return coerceFloat(v)
	case float32:
		return coerceFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int8:
		return decimal.NewFromInt(int64(v))
	case int16:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0)
	case uint8:
		return decimal.NewFromInt(int64(v))
	case uint16:
		return decimal.NewFromInt(int64(v))
	case uint32:
		return decimal.NewFromInt(int64(v))
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
	default:
		return decimal.Zero
	}
}

func coerceFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func coerceString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
