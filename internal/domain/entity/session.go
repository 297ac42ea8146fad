package entity

import "github.com/google/uuid"

// Session is the auth state pushed to subscribers. A nil *Session means signed out.
type Session struct {
	UserID      uuid.UUID `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
}

// NewSession builds the auth state for a user.
func NewSession(user *User) *Session {
	return &Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.Name,
		PhotoURL:    user.PhotoURL,
	}
}
