package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
)

// SessionTokens are the credentials handed to a signed-in client.
type SessionTokens struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identify the account behind a token. Persistent marks a
// "remember me" session, which keeps its longer lifetime across rotations.
type TokenClaims struct {
	UserID     uuid.UUID
	Email      string
	Persistent bool
	ExpiresAt  time.Time
}

// TokenService issues and revokes session tokens.
type TokenService interface {
	// IssueSession signs a new token pair for the user and stores the refresh half.
	IssueSession(ctx context.Context, user *entity.User, persistent bool) (*SessionTokens, error)

	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RedeemRefreshToken accepts a signed, stored and unrevoked refresh token
	// exactly once. The token is revoked before the claims are returned.
	RedeemRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeRefreshToken drops the token from the store. Claims are returned
	// when the signature still checks out, so callers know whose session ended.
	RevokeRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeSessions ends every session of the user.
	RevokeSessions(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetToken is a single-use link credential.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService manages the tokens mailed by the forgot-password flow.
type PasswordResetTokenService interface {
	IssueResetToken(ctx context.Context, user *entity.User) (*PasswordResetToken, error)

	// LookupResetToken returns an unused token. Expiry is left to the caller.
	LookupResetToken(ctx context.Context, token string) (*PasswordResetToken, error)

	ConsumeResetToken(ctx context.Context, token string) error
}
