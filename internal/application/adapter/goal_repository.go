package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/entity"
)

// GoalRepository defines the document operations on the goals collection.
type GoalRepository interface {
	// Create stores a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by ID, regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByOwner returns the owner's goals, newest first.
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update saves the editable fields of a goal. CurrentAmount is not written.
	Update(ctx context.Context, goal *entity.Goal) error

	// AddToCurrentAmount atomically increments the saved amount and returns the updated goal.
	AddToCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*entity.Goal, error)

	// Delete removes a goal.
	Delete(ctx context.Context, id uuid.UUID) error
}
