package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput carries the rotated pair and the refreshed session.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
	Session      *entity.Session
}

// RefreshTokenUseCase rotates a refresh token into a new session pair.
type RefreshTokenUseCase struct {
	tokenService adapter.TokenService
	userRepo     adapter.UserRepository
	publisher    adapter.ChangePublisher
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(
	tokenService adapter.TokenService,
	userRepo adapter.UserRepository,
	publisher adapter.ChangePublisher,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		tokenService: tokenService,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

// Execute redeems the refresh token once and issues a pair with the same
// lifetime. The pair is signed for the account as it is stored now, so a
// deleted account cannot be refreshed back into a session.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokenService.RedeemRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		slog.Debug("Refresh token rejected", "error", err)
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid, expired or revoked refresh token",
			domainerror.ErrInvalidToken,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			if revokeErr := uc.tokenService.RevokeSessions(ctx, claims.UserID); revokeErr != nil {
				slog.Warn("Failed to revoke sessions of deleted account", "user_id", claims.UserID, "error", revokeErr)
			}
			livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationSignedOut, claims.UserID.String(), claims.UserID)
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidToken,
				"account no longer exists",
				domainerror.ErrInvalidToken,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	tokens, err := uc.tokenService.IssueSession(ctx, user, claims.Persistent)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationRefreshed, user.ID.String(), user.ID)

	return &RefreshTokenOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Session:      entity.NewSession(user),
	}, nil
}
