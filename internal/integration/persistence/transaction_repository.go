package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create stores a new transaction.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionModelFromEntity(transaction)).Error
}

// FindByID retrieves a transaction by ID. A malformed row is returned as an error.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity()
}

// FindByOwner returns the owner's transactions, newest first.
// Malformed rows are logged and left out.
func (r *transactionRepository) FindByOwner(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")

	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var models []model.TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transaction, err := models[i].ToEntity()
		if err != nil {
			slog.Warn("skipping malformed transaction",
				"user_id", userID.String(),
				"error", err,
			)
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

// Update saves every field of the transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(model.TransactionModelFromEntity(transaction)).Error
}

// Delete removes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// DeleteByOwner removes every transaction of a user.
func (r *transactionRepository) DeleteByOwner(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "user_id = ?", userID).Error
}
