// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies how an account signs in.
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
	AuthProviderGoogle   AuthProvider = "google"
)

// User represents an identity in the Ecooy system.
type User struct {
	ID            uuid.UUID
	Email         string
	Name          string
	PasswordHash  string // Empty for federated-only accounts
	PhotoURL      string
	Provider      AuthProvider
	GoogleSubject *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

// NewUser creates a new password-based User.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Provider:     AuthProviderPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewFederatedUser creates a User backed by a Google account.
func NewFederatedUser(email, name, photoURL, subject string) *User {
	now := time.Now().UTC()
	return &User{
		ID:            uuid.New(),
		Email:         email,
		Name:          name,
		PhotoURL:      photoURL,
		Provider:      AuthProviderGoogle,
		GoogleSubject: &subject,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasPassword reports whether the user can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// TouchLogin records a successful sign-in.
func (u *User) TouchLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}
