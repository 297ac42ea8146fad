package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// GetGoalUseCase reads a single goal owned by the caller.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{goalRepo: goalRepo}
}

// Execute returns the goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	return findOwnedGoal(ctx, uc.goalRepo, goalID, userID)
}
