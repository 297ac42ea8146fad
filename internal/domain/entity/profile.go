package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Theme is the UI theme preference stored per profile.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// DefaultCurrency is the only currency the application handles.
const DefaultCurrency = "BRL"

// Salary day bounds.
const (
	MinSalaryDay = 1
	MaxSalaryDay = 31
)

// Profile holds per-user settings and display data.
type Profile struct {
	UserID        uuid.UUID
	Email         string
	DisplayName   string
	PhotoURL      string
	Salary        *decimal.Decimal
	SalaryDay     *int
	FixedExpenses *decimal.Decimal
	Currency      string
	Theme         Theme
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   time.Time
}

// NewProfile creates the profile written at signup.
func NewProfile(user *User) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.Name,
		PhotoURL:    user.PhotoURL,
		Currency:    DefaultCurrency,
		Theme:       ThemeLight,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastLoginAt: now,
	}
}

// NextSalaryDate returns the next date on or after from when the salary is paid.
// Days past the end of a short month fall on its last day.
func (p *Profile) NextSalaryDate(from time.Time) *time.Time {
	if p.SalaryDay == nil {
		return nil
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	candidate := SalaryDateIn(from.Year(), from.Month(), *p.SalaryDay, from.Location())
	if candidate.Before(from) {
		next := from.AddDate(0, 0, -from.Day()+1).AddDate(0, 1, 0)
		candidate = SalaryDateIn(next.Year(), next.Month(), *p.SalaryDay, from.Location())
	}
	return &candidate
}

// SalaryDateIn clamps day to the length of the given month.
func SalaryDateIn(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
