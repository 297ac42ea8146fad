package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Category    string          `gorm:"type:varchar(60);not null"`
	Date        string          `gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
// Rows with an unknown type or a non-positive amount are rejected.
func (m *TransactionModel) ToEntity() (*entity.Transaction, error) {
	transactionType := entity.TransactionType(m.Type)
	if !transactionType.IsValid() {
		return nil, domainerror.NewMalformedDocumentError(collectionTransactions, m.ID.String(), "unknown type "+m.Type)
	}
	if !m.Amount.IsPositive() {
		return nil, domainerror.NewMalformedDocumentError(collectionTransactions, m.ID.String(), "non-positive amount "+m.Amount.String())
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        transactionType,
		Category:    m.Category,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// TransactionModelFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionModelFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
