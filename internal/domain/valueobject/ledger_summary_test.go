package valueobject

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSummary(t *testing.T, got LedgerSummary, balance, income, expenses string) {
	t.Helper()
	assert.True(t, got.Balance.Equal(decimal.RequireFromString(balance)), "balance: expected %s, got %s", balance, got.Balance)
	assert.True(t, got.Income.Equal(decimal.RequireFromString(income)), "income: expected %s, got %s", income, got.Income)
	assert.True(t, got.Expenses.Equal(decimal.RequireFromString(expenses)), "expenses: expected %s, got %s", expenses, got.Expenses)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		records  []LedgerRecord
		balance  string
		income   string
		expenses string
	}{
		{"empty", nil, "0", "0", "0"},
		{
			name: "income and expense",
			records: []LedgerRecord{
				{Amount: 100, Type: "income"},
				{Amount: 40, Type: "expense"},
			},
			balance: "60", income: "100", expenses: "40",
		},
		{
			name:    "numeric string amount",
			records: []LedgerRecord{{Amount: "50", Type: "income"}},
			balance: "50", income: "50", expenses: "0",
		},
		{
			name:    "unknown kind is an expense",
			records: []LedgerRecord{{Amount: 30, Type: "transfer"}},
			balance: "-30", income: "0", expenses: "30",
		},
		{
			name: "non-numeric amounts count as zero",
			records: []LedgerRecord{
				{Amount: "abc", Type: "income"},
				{Amount: nil, Type: "expense"},
				{Amount: map[string]any{"v": 1}, Type: "income"},
				{Amount: math.NaN(), Type: "expense"},
			},
			balance: "0", income: "0", expenses: "0",
		},
		{
			name: "decimal fractions stay exact",
			records: []LedgerRecord{
				{Amount: 0.1, Type: "income"},
				{Amount: 0.2, Type: "income"},
				{Amount: " 0.3 ", Type: "expense"},
			},
			balance: "0", income: "0.3", expenses: "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSummary(t, Summarize(tt.records), tt.balance, tt.income, tt.expenses)
		})
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	records := []LedgerRecord{
		{Amount: 12.5, Type: "income"},
		{Amount: "7.25", Type: "expense"},
		{Amount: json.Number("3"), Type: "income"},
		{Amount: decimal.NewFromInt(9), Type: "expense"},
		{Amount: 1, Type: "gift"},
	}
	expected := Summarize(records)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]LedgerRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Summarize(shuffled)
		require.True(t, got.Balance.Equal(expected.Balance))
		require.True(t, got.Income.Equal(expected.Income))
		require.True(t, got.Expenses.Equal(expected.Expenses))
	}
}

func TestSummarize_DecodedJSON(t *testing.T) {
	payload := `[{"amount": 100, "type": "income"}, {"amount": "40", "type": "expense"}, {"type": "expense"}, {"amount": true, "type": "income"}]`

	var records []LedgerRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &records))

	assertSummary(t, Summarize(records), "61", "101", "40")
}

func TestLedgerRecord_UnmarshalMalformedKinds(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		kind    string
	}{
		{"string kind", `{"amount":30,"type":"income"}`, "income"},
		{"number kind", `{"amount":30,"type":5}`, ""},
		{"bool kind", `{"amount":30,"type":false}`, ""},
		{"object kind", `{"amount":30,"type":{"name":"income"}}`, ""},
		{"null kind", `{"amount":30,"type":null}`, ""},
		{"missing kind", `{"amount":30}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record LedgerRecord
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &record))
			assert.Equal(t, tt.kind, record.Type)
			assert.True(t, CoerceAmount(record.Amount).Equal(decimal.NewFromInt(30)))
		})
	}
}

func TestSummarize_NonObjectElements(t *testing.T) {
	payload := `[{"amount":30,"type":5}, 12, "x", null, {"amount":"0.10","type":"income"}]`

	var records []LedgerRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 5)

	assertSummary(t, Summarize(records), "-29.9", "0.1", "30")
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "0"},
		{"int", 7, "7"},
		{"int64", int64(-3), "-3"},
		{"uint64", uint64(5), "5"},
		{"float", 2.5, "2.5"},
		{"infinite float", math.Inf(1), "0"},
		{"blank string", "   ", "0"},
		{"numeric string", "1e2", "100"},
		{"hex string", "0x10", "0"},
		{"infinity string", "Infinity", "0"},
		{"json number", json.Number("8.75"), "8.75"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"slice", []int{1}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceAmount(tt.value)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "expected %s, got %s", tt.expected, got)
		})
	}
}
