package auth

import (
	"context"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	publisher    adapter.ChangePublisher
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, publisher adapter.ChangePublisher) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
		publisher:    publisher,
	}
}

// Execute invalidates the refresh token and pushes the signed-out state.
// It always succeeds.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	// A token that is already invalid still logs out
	claims, err := uc.tokenService.RevokeRefreshToken(ctx, input.RefreshToken)
	if err == nil {
		livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationSignedOut, claims.UserID.String(), claims.UserID)
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
