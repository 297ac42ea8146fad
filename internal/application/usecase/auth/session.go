package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// maxDisplayNameLength bounds the display name.
const maxDisplayNameLength = 100

// GetSessionUseCase returns the current auth state of a user.
type GetSessionUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetSessionUseCase creates a new GetSessionUseCase instance.
func NewGetSessionUseCase(userRepo adapter.UserRepository) *GetSessionUseCase {
	return &GetSessionUseCase{userRepo: userRepo}
}

// Execute returns the session, or nil when the account no longer exists.
func (uc *GetSessionUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return entity.NewSession(user), nil
}

// WatchSessionUseCase subscribes to auth-state changes of a user.
type WatchSessionUseCase struct {
	getSession *GetSessionUseCase
	subscriber adapter.ChangeSubscriber
}

// NewWatchSessionUseCase creates a new WatchSessionUseCase instance.
func NewWatchSessionUseCase(getSession *GetSessionUseCase, subscriber adapter.ChangeSubscriber) *WatchSessionUseCase {
	return &WatchSessionUseCase{
		getSession: getSession,
		subscriber: subscriber,
	}
}

// Execute opens the subscription. The first update is the current state;
// a nil session means signed out.
func (uc *WatchSessionUseCase) Execute(ctx context.Context, userID uuid.UUID) (*livequery.Handle[*entity.Session], error) {
	handle, err := livequery.Open(ctx, uc.subscriber, livequery.Query[*entity.Session]{
		Collection: entity.CollectionSessions,
		OwnerID:    userID,
		Load: func(ctx context.Context, event *entity.ChangeEvent) (*entity.Session, error) {
			if event != nil && event.Operation == entity.OperationSignedOut {
				return nil, nil
			}
			return uc.getSession.Execute(ctx, userID)
		},
	})
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSubscriptionUnavailable,
			"auth state subscription unavailable",
			err,
		)
	}
	return handle, nil
}

// UpdateDisplayNameInput represents the input for renaming a user.
type UpdateDisplayNameInput struct {
	UserID      uuid.UUID
	DisplayName string
}

// UpdateDisplayNameUseCase changes the display name on the identity and profile.
type UpdateDisplayNameUseCase struct {
	userRepo    adapter.UserRepository
	profileRepo adapter.ProfileRepository
	publisher   adapter.ChangePublisher
}

// NewUpdateDisplayNameUseCase creates a new UpdateDisplayNameUseCase instance.
func NewUpdateDisplayNameUseCase(
	userRepo adapter.UserRepository,
	profileRepo adapter.ProfileRepository,
	publisher adapter.ChangePublisher,
) *UpdateDisplayNameUseCase {
	return &UpdateDisplayNameUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// Execute performs the rename and returns the refreshed session.
func (uc *UpdateDisplayNameUseCase) Execute(ctx context.Context, input UpdateDisplayNameInput) (*entity.Session, error) {
	name := strings.TrimSpace(input.DisplayName)
	if name == "" || len([]rune(name)) > maxDisplayNameLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidDisplayName,
			"display name must have between 1 and 100 characters",
			nil,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}

	user.Name = name
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	profile.DisplayName = name
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionProfiles, entity.OperationUpdated, user.ID.String(), user.ID)
	livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationUpdated, user.ID.String(), user.ID)

	return entity.NewSession(user), nil
}
