// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeEmptyGoalName,
			"goal name is required",
			domainerror.ErrEmptyGoalName,
		)
	}
	if utf8.RuneCountInString(name) > entity.MaxGoalNameLength {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNameTooLong,
			fmt.Sprintf("goal name must not exceed %d characters", entity.MaxGoalNameLength),
			domainerror.ErrGoalNameTooLong,
		)
	}
	return nil
}

func validateTargetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

func normalizeDeadline(deadline *string) *string {
	if deadline == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*deadline)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// findOwnedGoal loads a goal and checks it belongs to userID.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}
	return goal, nil
}
