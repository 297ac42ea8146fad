package adapters

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/ecooy/backend/internal/application/adapter"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleIdentityVerifier verifies Google Sign-In ID tokens.
type GoogleIdentityVerifier struct {
	clientID string
	validate validateFunc
}

// NewGoogleIdentityVerifier creates a verifier for tokens issued to clientID.
func NewGoogleIdentityVerifier(clientID string) *GoogleIdentityVerifier {
	return &GoogleIdentityVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// IsAvailable reports whether a client ID is configured.
func (v *GoogleIdentityVerifier) IsAvailable() bool {
	return v.clientID != ""
}

// Verify checks the token and extracts the identity claims.
func (v *GoogleIdentityVerifier) Verify(ctx context.Context, idToken string) (*adapter.FederatedIdentity, error) {
	if !v.IsAvailable() {
		return nil, fmt.Errorf("google sign-in is not configured")
	}

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google id token: %w", err)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("google id token has no subject")
	}

	return &adapter.FederatedIdentity{
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		Name:          claimString(payload.Claims, "name"),
		PictureURL:    claimString(payload.Claims, "picture"),
	}, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// claimBool accepts both JSON booleans and the "true"/"false" strings some issuers send.
func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
