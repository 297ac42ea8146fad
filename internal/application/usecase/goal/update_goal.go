package goal

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
)

// UpdateGoalInput represents the input for goal update.
// The saved amount is not editable here; it only changes through deposits.
type UpdateGoalInput struct {
	GoalID       uuid.UUID
	UserID       uuid.UUID
	Name         *string
	Category     *string
	TargetAmount *decimal.Decimal
	Deadline     *string // Empty string clears the deadline
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo  adapter.GoalRepository
	publisher adapter.ChangePublisher
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, publisher adapter.ChangePublisher) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo:  goalRepo,
		publisher: publisher,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*entity.Goal, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		goal.Name = strings.TrimSpace(*input.Name)
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			category = entity.DefaultCategory
		}
		goal.Category = category
	}

	if input.TargetAmount != nil {
		if err := validateTargetAmount(*input.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *input.TargetAmount
	}

	if input.Deadline != nil {
		goal.Deadline = normalizeDeadline(input.Deadline)
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionGoals, entity.OperationUpdated, goal.ID.String(), goal.UserID)

	return goal, nil
}
