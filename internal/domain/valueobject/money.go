// Package valueobject contains domain value objects for the Ecooy system.
package valueobject

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	thousandsSeparator = "."
	decimalSeparator   = ","
	currencyPrefix     = "R$ "
)

// FormatForDisplay turns raw keyboard input into a pt-BR money string.
// Every non-digit is dropped and the remaining digits are read as cents,
// so "123456" becomes "1.234,56". Input without digits yields "".
func FormatForDisplay(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	cents, err := decimal.NewFromString(digits.String())
	if err != nil {
		return ""
	}
	return FormatDecimal(cents.Shift(-2))
}

// FormatDecimal renders an amount with two fraction digits in pt-BR style.
func FormatDecimal(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	b.WriteString(decimalSeparator)
	b.WriteString(fracPart)
	return b.String()
}

// FormatCurrency renders an amount prefixed with the BRL symbol.
func FormatCurrency(amount decimal.Decimal) string {
	return currencyPrefix + FormatDecimal(amount)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseFromDisplay reads a pt-BR money string back into a number.
// Dots are dropped, the first comma becomes the decimal point and the
// longest leading numeric prefix is parsed. It never fails: anything
// without a usable prefix returns 0.
func ParseFromDisplay(display string) float64 {
	clean := strings.ReplaceAll(display, thousandsSeparator, "")
	clean = strings.Replace(clean, decimalSeparator, ".", 1)

	value, err := strconv.ParseFloat(numericPrefix(clean), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// ParseDecimalFromDisplay is ParseFromDisplay for callers that keep money as decimals.
func ParseDecimalFromDisplay(display string) decimal.Decimal {
	return decimal.NewFromFloat(ParseFromDisplay(display))
}

// numericPrefix returns the longest prefix of s, after leading whitespace,
// shaped like [sign] digits [. digits] [e [sign] digits].
func numericPrefix(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if expDigits := countDigits(s[j:]); expDigits > 0 {
			i = j + expDigits
		}
	}
	return s[:i]
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
