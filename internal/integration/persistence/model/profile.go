package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// ProfileModel represents the profiles table. One row per user.
type ProfileModel struct {
	UserID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Email         string           `gorm:"type:varchar(255);not null"`
	DisplayName   string           `gorm:"type:varchar(100);not null"`
	PhotoURL      string           `gorm:"type:varchar(1024);not null;default:''"`
	Salary        *decimal.Decimal `gorm:"type:decimal(15,2)"`
	SalaryDay     *int             `gorm:"index"`
	FixedExpenses *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Currency      string           `gorm:"type:varchar(3);not null;default:'BRL'"`
	Theme         string           `gorm:"type:varchar(10);not null;default:'light'"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
	LastLoginAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts the row, rejecting out-of-range settings.
func (m *ProfileModel) ToEntity() (*entity.Profile, error) {
	id := m.UserID.String()
	if m.SalaryDay != nil && (*m.SalaryDay < entity.MinSalaryDay || *m.SalaryDay > entity.MaxSalaryDay) {
		return nil, domainerror.NewMalformedDocumentError(collectionProfiles, id, fmt.Sprintf("salary day %d out of range", *m.SalaryDay))
	}
	if m.Salary != nil && m.Salary.IsNegative() {
		return nil, domainerror.NewMalformedDocumentError(collectionProfiles, id, "negative salary")
	}
	if m.FixedExpenses != nil && m.FixedExpenses.IsNegative() {
		return nil, domainerror.NewMalformedDocumentError(collectionProfiles, id, "negative fixed expenses")
	}

	theme := entity.Theme(m.Theme)
	if !theme.IsValid() {
		theme = entity.ThemeLight
	}
	currency := m.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	return &entity.Profile{
		UserID:        m.UserID,
		Email:         m.Email,
		DisplayName:   m.DisplayName,
		PhotoURL:      m.PhotoURL,
		Salary:        m.Salary,
		SalaryDay:     m.SalaryDay,
		FixedExpenses: m.FixedExpenses,
		Currency:      currency,
		Theme:         theme,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		LastLoginAt:   m.LastLoginAt,
	}, nil
}

// ProfileModelFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileModelFromEntity(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:        profile.UserID,
		Email:         profile.Email,
		DisplayName:   profile.DisplayName,
		PhotoURL:      profile.PhotoURL,
		Salary:        profile.Salary,
		SalaryDay:     profile.SalaryDay,
		FixedExpenses: profile.FixedExpenses,
		Currency:      profile.Currency,
		Theme:         string(profile.Theme),
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
		LastLoginAt:   profile.LastLoginAt,
	}
}
