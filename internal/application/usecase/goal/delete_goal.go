package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

// DeleteGoalUseCase handles goal deletion logic.
type DeleteGoalUseCase struct {
	goalRepo  adapter.GoalRepository
	publisher adapter.ChangePublisher
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, publisher adapter.ChangePublisher) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo:  goalRepo,
		publisher: publisher,
	}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, goalID, userID uuid.UUID) error {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, goalID, userID)
	if err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionGoals, entity.OperationDeleted, goal.ID.String(), goal.UserID)

	return nil
}
