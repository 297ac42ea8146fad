package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ecooy/backend/config"
	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	"github.com/ecooy/backend/internal/integration/persistence"
)

const (
	// Persistent ("remember me") sessions outlive the configured defaults.
	persistentAccessTTL  = 7 * 24 * time.Hour
	persistentRefreshTTL = 30 * 24 * time.Hour

	resetTokenTTL   = time.Hour
	resetTokenBytes = 32

	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"

	tokenIssuer = "ecooy"
)

var errRefreshTokenRevoked = errors.New("refresh token revoked, expired or already used")

// sessionClaims is the JWT payload of both halves of a session.
type sessionClaims struct {
	Email      string `json:"email"`
	Use        string `json:"use"`
	Persistent bool   `json:"persistent,omitempty"`
	jwt.RegisteredClaims
}

type jwtTokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      persistence.TokenRepository
	now        func() time.Time
}

// NewTokenService creates an HS256 session token service.
func NewTokenService(cfg *config.JWTConfig, store persistence.TokenRepository) adapter.TokenService {
	return &jwtTokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTokenExpiry,
		refreshTTL: cfg.RefreshTokenExpiry,
		store:      store,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *jwtTokenService) IssueSession(ctx context.Context, user *entity.User, persistent bool) (*adapter.SessionTokens, error) {
	accessTTL, refreshTTL := s.accessTTL, s.refreshTTL
	if persistent {
		accessTTL, refreshTTL = persistentAccessTTL, persistentRefreshTTL
	}

	issuedAt := s.now()
	access, err := s.sign(user, tokenUseAccess, persistent, issuedAt, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(user, tokenUseRefresh, persistent, issuedAt, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.store.SaveRefreshToken(ctx, refresh, user.ID, issuedAt.Add(refreshTTL)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &adapter.SessionTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *jwtTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parse(token, tokenUseAccess)
}

func (s *jwtTokenService) RedeemRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parse(token, tokenUseRefresh)
	if err != nil {
		return nil, err
	}

	consumed, err := s.store.ConsumeRefreshToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if !consumed {
		return nil, errRefreshTokenRevoked
	}
	return claims, nil
}

func (s *jwtTokenService) RevokeRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if err := s.store.InvalidateRefreshToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return s.parse(token, tokenUseRefresh)
}

func (s *jwtTokenService) RevokeSessions(ctx context.Context, userID uuid.UUID) error {
	return s.store.InvalidateAllUserRefreshTokens(ctx, userID)
}

func (s *jwtTokenService) sign(user *entity.User, use string, persistent bool, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Email:      user.Email,
		Use:        use,
		Persistent: persistent,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *jwtTokenService) parse(token, use string) (*adapter.TokenClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.Use != use {
		return nil, fmt.Errorf("expected %s token, got %q", use, claims.Use)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in token: %w", err)
	}

	return &adapter.TokenClaims{
		UserID:     userID,
		Email:      claims.Email,
		Persistent: claims.Persistent,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

type resetTokenService struct {
	store persistence.TokenRepository
	now   func() time.Time
}

// NewPasswordResetTokenService creates a service for single-use reset links.
func NewPasswordResetTokenService(store persistence.TokenRepository) adapter.PasswordResetTokenService {
	return &resetTokenService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// IssueResetToken stores a random 256-bit token valid for one hour.
func (s *resetTokenService) IssueResetToken(ctx context.Context, user *entity.User) (*adapter.PasswordResetToken, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}

	issued := &adapter.PasswordResetToken{
		Token:     hex.EncodeToString(raw),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.store.SavePasswordResetToken(ctx, issued.Token, issued.UserID, issued.Email, issued.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}
	return issued, nil
}

func (s *resetTokenService) LookupResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	stored, err := s.store.GetPasswordResetToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load reset token: %w", err)
	}
	if stored == nil {
		return nil, errors.New("reset token unknown or already used")
	}
	return &adapter.PasswordResetToken{
		Token:     stored.Token,
		UserID:    stored.UserID,
		Email:     stored.Email,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (s *resetTokenService) ConsumeResetToken(ctx context.Context, token string) error {
	return s.store.InvalidatePasswordResetToken(ctx, token)
}
