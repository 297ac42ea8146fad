package dto

// FormatMoneyResponse is the result of formatting raw digits.
type FormatMoneyResponse struct {
	Display string `json:"display"`
}

// ParseMoneyResponse is the result of parsing a display string.
type ParseMoneyResponse struct {
	Amount float64 `json:"amount"`
}
