package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// ListGoalsOutput is the owner's goals plus how many are already reached.
type ListGoalsOutput struct {
	Goals   []*entity.Goal
	Total   int
	Reached int
}

// ListGoalsUseCase handles listing the goals of a user.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute returns the owner's goals, newest first.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	output := &ListGoalsOutput{Goals: goals, Total: len(goals)}
	for _, g := range goals {
		if g.IsReached() {
			output.Reached++
		}
	}
	return output, nil
}
