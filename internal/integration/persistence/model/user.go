// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// Collection names used in malformed document errors.
const (
	collectionUsers         = "users"
	collectionProfiles      = "profiles"
	collectionTransactions  = "transactions"
	collectionGoals         = "goals"
	collectionNotifications = "notifications"
	collectionEmailQueue    = "email_queue"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string     `gorm:"type:varchar(100);not null"`
	PasswordHash  string     `gorm:"type:varchar(255);not null;default:''"`
	PhotoURL      string     `gorm:"type:varchar(1024);not null;default:''"`
	Provider      string     `gorm:"type:varchar(20);not null;default:'password'"`
	GoogleSubject *string    `gorm:"type:varchar(255);uniqueIndex"`
	LastLoginAt   *time.Time `gorm:"type:timestamptz"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() (*entity.User, error) {
	provider := entity.AuthProvider(m.Provider)
	if provider != entity.AuthProviderPassword && provider != entity.AuthProviderGoogle {
		return nil, domainerror.NewMalformedDocumentError(collectionUsers, m.ID.String(), "unknown provider "+m.Provider)
	}

	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		PhotoURL:      m.PhotoURL,
		Provider:      provider,
		GoogleSubject: m.GoogleSubject,
		LastLoginAt:   m.LastLoginAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		PasswordHash:  user.PasswordHash,
		PhotoURL:      user.PhotoURL,
		Provider:      string(user.Provider),
		GoogleSubject: user.GoogleSubject,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// RefreshTokenModel tracks issued refresh tokens so they can be revoked.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel represents the password_reset_tokens table.
type PasswordResetTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Token     string     `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Email     string     `gorm:"type:varchar(255);not null"`
	Used      bool       `gorm:"default:false"`
	UsedAt    *time.Time `gorm:"type:timestamptz"`
	ExpiresAt time.Time  `gorm:"not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the PasswordResetTokenModel.
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
