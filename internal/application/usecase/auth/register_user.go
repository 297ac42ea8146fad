// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUserInput represents the signup form.
type RegisterUserInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	Profile      *entity.Profile
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	profileRepo     adapter.ProfileRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	emailService    adapter.EmailService
	publisher       adapter.ChangePublisher
	appBaseURL      string
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	profileRepo adapter.ProfileRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	emailService adapter.EmailService,
	publisher adapter.ChangePublisher,
	appBaseURL string,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		emailService:    emailService,
		publisher:       publisher,
		appBaseURL:      appBaseURL,
	}
}

// Execute validates the signup form, creates the account and its profile,
// and signs the new user in.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"name, email, password and confirmation are required",
			nil,
		)
	}

	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if input.Password != input.ConfirmPassword {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodePasswordMismatch,
			"passwords do not match",
			domainerror.ErrPasswordMismatch,
		)
	}

	if err := uc.passwordService.CheckStrength(input.Password); err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, passwordHash)
	user.TouchLogin()
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := entity.NewProfile(user)
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	tokenPair, err := uc.tokenService.IssueSession(ctx, user, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if uc.emailService != nil {
		if err := uc.emailService.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
			UserEmail: user.Email,
			UserName:  user.Name,
			AppURL:    uc.appBaseURL,
		}); err != nil {
			slog.Error("Failed to queue welcome email", "error", err, "user_id", user.ID)
		}
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionProfiles, entity.OperationCreated, user.ID.String(), user.ID)
	livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationSignedIn, user.ID.String(), user.ID)

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
		Profile:      profile,
	}, nil
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
