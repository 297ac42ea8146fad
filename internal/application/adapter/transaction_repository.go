package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
)

// TransactionRepository defines the document operations on the transactions collection.
type TransactionRepository interface {
	// Create stores a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by ID, regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByOwner returns the owner's transactions, newest first.
	// Rows that fail to decode are skipped.
	FindByOwner(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// Update saves the mutable fields of a transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner removes every transaction owned by a user.
	DeleteByOwner(ctx context.Context, userID uuid.UUID) error
}
