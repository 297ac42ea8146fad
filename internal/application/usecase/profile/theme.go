package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// SetThemeUseCase stores an explicit theme choice.
type SetThemeUseCase struct {
	profileRepo adapter.ProfileRepository
	publisher   adapter.ChangePublisher
}

// NewSetThemeUseCase creates a new SetThemeUseCase instance.
func NewSetThemeUseCase(profileRepo adapter.ProfileRepository, publisher adapter.ChangePublisher) *SetThemeUseCase {
	return &SetThemeUseCase{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// Execute sets the theme.
func (uc *SetThemeUseCase) Execute(ctx context.Context, userID uuid.UUID, theme entity.Theme) (*entity.Profile, error) {
	if !theme.IsValid() {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidTheme,
			"theme must be 'light' or 'dark'",
			domainerror.ErrInvalidTheme,
		)
	}

	profile, err := loadProfile(ctx, uc.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return saveTheme(ctx, uc.profileRepo, uc.publisher, profile, theme)
}

// ToggleThemeUseCase flips between light and dark.
type ToggleThemeUseCase struct {
	profileRepo adapter.ProfileRepository
	publisher   adapter.ChangePublisher
}

// NewToggleThemeUseCase creates a new ToggleThemeUseCase instance.
func NewToggleThemeUseCase(profileRepo adapter.ProfileRepository, publisher adapter.ChangePublisher) *ToggleThemeUseCase {
	return &ToggleThemeUseCase{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// Execute toggles the stored theme. An unset theme counts as light.
func (uc *ToggleThemeUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := loadProfile(ctx, uc.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return saveTheme(ctx, uc.profileRepo, uc.publisher, profile, profile.Theme.Toggled())
}

func saveTheme(
	ctx context.Context,
	repo adapter.ProfileRepository,
	publisher adapter.ChangePublisher,
	profile *entity.Profile,
	theme entity.Theme,
) (*entity.Profile, error) {
	profile.Theme = theme
	profile.UpdatedAt = time.Now().UTC()

	if err := repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update theme: %w", err)
	}

	livequery.Announce(ctx, publisher, entity.CollectionProfiles, entity.OperationUpdated, profile.UserID.String(), profile.UserID)

	return profile, nil
}
