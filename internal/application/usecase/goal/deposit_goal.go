package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// DepositInput represents money put aside for a goal.
type DepositInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Amount decimal.Decimal
}

// DepositOutput carries the updated goal and whether this deposit reached it.
type DepositOutput struct {
	Goal       *entity.Goal
	ReachedNow bool
}

// DepositUseCase adds savings to a goal.
type DepositUseCase struct {
	goalRepo         adapter.GoalRepository
	profileRepo      adapter.ProfileRepository
	notificationRepo adapter.NotificationRepository
	emailService     adapter.EmailService
	publisher        adapter.ChangePublisher
}

// NewDepositUseCase creates a new DepositUseCase instance.
func NewDepositUseCase(
	goalRepo adapter.GoalRepository,
	profileRepo adapter.ProfileRepository,
	notificationRepo adapter.NotificationRepository,
	emailService adapter.EmailService,
	publisher adapter.ChangePublisher,
) *DepositUseCase {
	return &DepositUseCase{
		goalRepo:         goalRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		publisher:        publisher,
	}
}

// Execute increments the saved amount. Exceeding the target is allowed.
func (uc *DepositUseCase) Execute(ctx context.Context, input DepositInput) (*DepositOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidDepositAmount,
			"deposit amount must be greater than zero",
			domainerror.ErrInvalidDepositAmount,
		)
	}

	if _, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return nil, err
	}

	goal, err := uc.goalRepo.AddToCurrentAmount(ctx, input.GoalID, input.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to deposit into goal: %w", err)
	}

	// The increment is atomic, so the pre-deposit amount is derived from the result.
	previous := goal.CurrentAmount.Sub(input.Amount)
	reachedNow := previous.LessThan(goal.TargetAmount) && goal.IsReached()

	livequery.Announce(ctx, uc.publisher, entity.CollectionGoals, entity.OperationUpdated, goal.ID.String(), goal.UserID)

	if reachedNow {
		uc.celebrate(ctx, goal)
	}

	return &DepositOutput{Goal: goal, ReachedNow: reachedNow}, nil
}

func (uc *DepositUseCase) celebrate(ctx context.Context, goal *entity.Goal) {
	notification := entity.NewNotification(
		goal.UserID,
		entity.NotificationTypeGoal,
		"Meta alcançada!",
		fmt.Sprintf("Você atingiu a meta \"%s\" de %s.", goal.Name, valueobject.FormatCurrency(goal.TargetAmount)),
	)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		slog.Warn("failed to create goal notification",
			"goal_id", goal.ID.String(),
			"error", err,
		)
	} else {
		livequery.Announce(ctx, uc.publisher, entity.CollectionNotifications, entity.OperationCreated, notification.ID.String(), goal.UserID)
	}

	if uc.emailService == nil {
		return
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, goal.UserID)
	if err != nil {
		slog.Warn("failed to load profile for goal email",
			"user_id", goal.UserID.String(),
			"error", err,
		)
		return
	}

	if err := uc.emailService.QueueGoalReachedEmail(ctx, adapter.QueueGoalReachedInput{
		UserEmail:    profile.Email,
		UserName:     profile.DisplayName,
		GoalName:     goal.Name,
		TargetAmount: valueobject.FormatCurrency(goal.TargetAmount),
		SavedAmount:  valueobject.FormatCurrency(goal.CurrentAmount),
	}); err != nil {
		slog.Warn("failed to queue goal reached email",
			"goal_id", goal.ID.String(),
			"error", err,
		)
	}
}
