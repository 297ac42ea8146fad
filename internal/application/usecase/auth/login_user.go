package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	profileRepo     adapter.ProfileRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	publisher       adapter.ChangePublisher
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	profileRepo adapter.ProfileRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	publisher adapter.ChangePublisher,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		publisher:       publisher,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	invalid := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)

	// Same error for unknown emails to prevent enumeration
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, invalid
	}

	if !uc.passwordService.Matches(user.PasswordHash, input.Password) {
		return nil, invalid
	}

	tokenPair, err := uc.tokenService.IssueSession(ctx, user, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	recordLogin(ctx, uc.userRepo, uc.profileRepo, user)
	livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationSignedIn, user.ID.String(), user.ID)

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// recordLogin stamps the last login on the user and profile. A failure here
// does not invalidate the sign-in.
func recordLogin(ctx context.Context, userRepo adapter.UserRepository, profileRepo adapter.ProfileRepository, user *entity.User) {
	user.TouchLogin()
	if err := userRepo.Update(ctx, user); err != nil {
		slog.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}

	profile, err := profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		slog.Warn("Failed to load profile on login", "user_id", user.ID, "error", err)
		return
	}
	profile.LastLoginAt = *user.LastLoginAt
	if err := profileRepo.Update(ctx, profile); err != nil {
		slog.Warn("Failed to record profile last login", "user_id", user.ID, "error", err)
	}
}
