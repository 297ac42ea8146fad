package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/persistence/model"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(model.ProfileModelFromEntity(profile)).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity()
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Save(model.ProfileModelFromEntity(profile)).Error
}

// FindBySalaryDay skips malformed profiles instead of failing the whole batch.
func (r *profileRepository) FindBySalaryDay(ctx context.Context, days []int) ([]*entity.Profile, error) {
	if len(days) == 0 {
		return nil, nil
	}

	var models []model.ProfileModel
	result := r.db.WithContext(ctx).Where("salary_day IN ?", days).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	profiles := make([]*entity.Profile, 0, len(models))
	for i := range models {
		profile, err := models[i].ToEntity()
		if err != nil {
			slog.Warn("skipping malformed profile", "error", err)
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
