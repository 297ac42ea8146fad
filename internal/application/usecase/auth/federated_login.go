package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// FederatedLoginInput carries the ID token obtained by the client from Google.
type FederatedLoginInput struct {
	IDToken    string
	RememberMe bool
}

// FederatedLoginOutput represents the output of a federated sign-in.
type FederatedLoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	IsNewUser    bool
}

// FederatedLoginUseCase signs users in with a Google ID token, creating or
// linking the account on first use.
type FederatedLoginUseCase struct {
	userRepo     adapter.UserRepository
	profileRepo  adapter.ProfileRepository
	verifier     adapter.FederatedIdentityVerifier
	tokenService adapter.TokenService
	emailService adapter.EmailService
	publisher    adapter.ChangePublisher
	appBaseURL   string
}

// NewFederatedLoginUseCase creates a new FederatedLoginUseCase instance.
func NewFederatedLoginUseCase(
	userRepo adapter.UserRepository,
	profileRepo adapter.ProfileRepository,
	verifier adapter.FederatedIdentityVerifier,
	tokenService adapter.TokenService,
	emailService adapter.EmailService,
	publisher adapter.ChangePublisher,
	appBaseURL string,
) *FederatedLoginUseCase {
	return &FederatedLoginUseCase{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		verifier:     verifier,
		tokenService: tokenService,
		emailService: emailService,
		publisher:    publisher,
		appBaseURL:   appBaseURL,
	}
}

// Execute performs the federated sign-in.
func (uc *FederatedLoginUseCase) Execute(ctx context.Context, input FederatedLoginInput) (*FederatedLoginOutput, error) {
	if uc.verifier == nil || !uc.verifier.IsAvailable() {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeFederatedNotAvailable,
			"federated sign-in is not configured",
			domainerror.ErrFederatedSignInDisabled,
		)
	}

	identity, err := uc.verifier.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidIdentityToken,
			"invalid identity token",
			errors.Join(domainerror.ErrInvalidIdentityToken, err),
		)
	}
	if identity.Email == "" || !identity.EmailVerified {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidIdentityToken,
			"identity token has no verified email",
			domainerror.ErrInvalidIdentityToken,
		)
	}

	user, isNew, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.tokenService.IssueSession(ctx, user, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if !isNew {
		recordLogin(ctx, uc.userRepo, uc.profileRepo, user)
	}
	livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationSignedIn, user.ID.String(), user.ID)

	return &FederatedLoginOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
		IsNewUser:    isNew,
	}, nil
}

// resolveUser finds the account by Google subject, then by email, and
// otherwise creates it together with its profile.
func (uc *FederatedLoginUseCase) resolveUser(ctx context.Context, identity *adapter.FederatedIdentity) (*entity.User, bool, error) {
	user, err := uc.userRepo.FindByGoogleSubject(ctx, identity.Subject)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to find user by subject: %w", err)
	}

	email := strings.ToLower(identity.Email)
	user, err = uc.userRepo.FindByEmail(ctx, email)
	if err == nil {
		subject := identity.Subject
		user.GoogleSubject = &subject
		if user.PhotoURL == "" {
			user.PhotoURL = identity.PictureURL
		}
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, false, fmt.Errorf("failed to link google account: %w", err)
		}
		return user, false, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to find user by email: %w", err)
	}

	name := identity.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	user = entity.NewFederatedUser(email, name, identity.PictureURL, identity.Subject)
	user.TouchLogin()
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	if err := uc.profileRepo.Create(ctx, entity.NewProfile(user)); err != nil {
		return nil, false, fmt.Errorf("failed to create profile: %w", err)
	}
	livequery.Announce(ctx, uc.publisher, entity.CollectionProfiles, entity.OperationCreated, user.ID.String(), user.ID)

	if uc.emailService != nil {
		_ = uc.emailService.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
			UserEmail: user.Email,
			UserName:  user.Name,
			AppURL:    uc.appBaseURL,
		})
	}
	return user, true, nil
}
