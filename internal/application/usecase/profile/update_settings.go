package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// UpdateSettingsInput is the profile settings form. Nil fields are left untouched.
type UpdateSettingsInput struct {
	UserID        uuid.UUID
	Salary        *decimal.Decimal
	SalaryDay     *int
	FixedExpenses *decimal.Decimal
	PhotoURL      *string
}

// UpdateSettingsUseCase saves the salary and budget settings.
type UpdateSettingsUseCase struct {
	profileRepo adapter.ProfileRepository
	publisher   adapter.ChangePublisher
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(profileRepo adapter.ProfileRepository, publisher adapter.ChangePublisher) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// Execute validates and stores the settings.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*entity.Profile, error) {
	if input.Salary != nil && input.Salary.IsNegative() {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeNegativeAmount,
			"salary cannot be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	if input.FixedExpenses != nil && input.FixedExpenses.IsNegative() {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeNegativeAmount,
			"fixed expenses cannot be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	if input.SalaryDay != nil && (*input.SalaryDay < entity.MinSalaryDay || *input.SalaryDay > entity.MaxSalaryDay) {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidSalaryDay,
			"salary day must be between 1 and 31",
			domainerror.ErrInvalidSalaryDay,
		)
	}

	profile, err := loadProfile(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Salary != nil {
		salary := *input.Salary
		profile.Salary = &salary
	}
	if input.SalaryDay != nil {
		day := *input.SalaryDay
		profile.SalaryDay = &day
	}
	if input.FixedExpenses != nil {
		fixed := *input.FixedExpenses
		profile.FixedExpenses = &fixed
	}
	if input.PhotoURL != nil {
		profile.PhotoURL = strings.TrimSpace(*input.PhotoURL)
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionProfiles, entity.OperationUpdated, profile.UserID.String(), profile.UserID)

	return profile, nil
}
