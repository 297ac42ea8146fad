package adapter

import "context"

// FederatedIdentity is the verified subset of a federated ID token.
type FederatedIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	PictureURL    string
}

// FederatedIdentityVerifier verifies ID tokens issued by an external identity provider.
type FederatedIdentityVerifier interface {
	// Verify checks the token signature and audience and returns its identity claims.
	Verify(ctx context.Context, idToken string) (*FederatedIdentity, error)

	// IsAvailable reports whether the verifier has a configured client.
	IsAvailable() bool
}
