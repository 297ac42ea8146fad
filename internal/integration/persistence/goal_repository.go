package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalModelFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return findGoal(r.db.WithContext(ctx), id)
}

func findGoal(db *gorm.DB, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := db.Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity()
}

// FindByOwner retrieves all goals for a given user, newest first.
func (r *goalRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, 0, len(goalModels))
	for i := range goalModels {
		goal, err := goalModels[i].ToEntity()
		if err != nil {
			slog.Warn("skipping malformed goal",
				"user_id", userID.String(),
				"error", err,
			)
			continue
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

// Update writes the editable fields. The saved amount is owned by AddToCurrentAmount.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", goal.ID).
		Updates(map[string]any{
			"name":          goal.Name,
			"category":      goal.Category,
			"target_amount": goal.TargetAmount,
			"deadline":      goal.Deadline,
			"updated_at":    goal.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// AddToCurrentAmount increments the saved amount in a single UPDATE and reads the row back.
func (r *goalRepository) AddToCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*entity.Goal, error) {
	var goal *entity.Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.GoalModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"current_amount": gorm.Expr("current_amount + ?", amount),
				"updated_at":     time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrGoalNotFound
		}

		var err error
		goal, err = findGoal(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}
