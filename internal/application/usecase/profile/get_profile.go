// Package profile contains use cases for the per-user settings document.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// GetProfileUseCase reads the caller's profile.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo}
}

// Execute returns the profile owned by userID.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return loadProfile(ctx, uc.profileRepo, userID)
}

func loadProfile(ctx context.Context, repo adapter.ProfileRepository, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileNotFound,
				"profile not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
