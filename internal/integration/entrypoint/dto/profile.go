package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/entity"
)

// UpdateDisplayNameRequest represents the request body for renaming a user.
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// UpdateProfileRequest represents the request body for the salary settings.
type UpdateProfileRequest struct {
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	SalaryDay     *int             `json:"salary_day,omitempty"`
	FixedExpenses *decimal.Decimal `json:"fixed_expenses,omitempty"`
	PhotoURL      *string          `json:"photo_url,omitempty" binding:"omitempty,max=1024"`
}

// SetThemeRequest represents the request body for choosing a theme.
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password     string `json:"password"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// PreferencesResponse holds the display preferences of a profile.
type PreferencesResponse struct {
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// ProfileResponse represents the profile document in API responses.
type ProfileResponse struct {
	UserID        string              `json:"uid"`
	Email         string              `json:"email"`
	DisplayName   string              `json:"display_name"`
	PhotoURL      string              `json:"photo_url,omitempty"`
	Salary        *string             `json:"salary"`
	SalaryDay     *int                `json:"salary_day"`
	FixedExpenses *string             `json:"fixed_expenses"`
	Preferences   PreferencesResponse `json:"preferences"`
	CreatedAt     time.Time           `json:"created_at"`
	LastLogin     time.Time           `json:"last_login"`
}

// ToProfileResponse converts a domain Profile to a ProfileResponse DTO.
func ToProfileResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:        profile.UserID.String(),
		Email:         profile.Email,
		DisplayName:   profile.DisplayName,
		PhotoURL:      profile.PhotoURL,
		Salary:        formatOptionalAmount(profile.Salary),
		SalaryDay:     profile.SalaryDay,
		FixedExpenses: formatOptionalAmount(profile.FixedExpenses),
		Preferences: PreferencesResponse{
			Currency: profile.Currency,
			Theme:    string(profile.Theme),
		},
		CreatedAt: profile.CreatedAt,
		LastLogin: profile.LastLoginAt,
	}
}
