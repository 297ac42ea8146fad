package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
)

// ProfileRepository persists per-user settings documents.
type ProfileRepository interface {
	// Create stores the profile written at signup.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByUserID retrieves the profile owned by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Update overwrites the profile fields.
	Update(ctx context.Context, profile *entity.Profile) error

	// FindBySalaryDay returns profiles whose salary day matches one of days.
	FindBySalaryDay(ctx context.Context, days []int) ([]*entity.Profile, error)
}
