package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	Category     string
	TargetAmount decimal.Decimal
	Deadline     *string // Optional
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo  adapter.GoalRepository
	publisher adapter.ChangePublisher
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, publisher adapter.ChangePublisher) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:  goalRepo,
		publisher: publisher,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*entity.Goal, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateTargetAmount(input.TargetAmount); err != nil {
		return nil, err
	}

	goal := entity.NewGoal(
		input.UserID,
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Category),
		input.TargetAmount,
		normalizeDeadline(input.Deadline),
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionGoals, entity.OperationCreated, goal.ID.String(), goal.UserID)

	return goal, nil
}
