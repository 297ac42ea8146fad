// Package transaction contains transaction-related use cases.
package transaction

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

func validateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}
	if utf8.RuneCountInString(description) > entity.MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", entity.MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyCategory,
			"category is required",
			domainerror.ErrEmptyCategory,
		)
	}
	if utf8.RuneCountInString(category) > entity.MaxCategoryLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTooLong,
			fmt.Sprintf("category must not exceed %d characters", entity.MaxCategoryLength),
			domainerror.ErrCategoryTooLong,
		)
	}
	return nil
}

func validateDate(date string) error {
	if utf8.RuneCountInString(strings.TrimSpace(date)) > entity.MaxDateLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			fmt.Sprintf("date must not exceed %d characters", entity.MaxDateLength),
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

// findOwned loads a transaction and checks it belongs to userID.
func findOwned(find func(uuid.UUID) (*entity.Transaction, error), id, userID uuid.UUID, action string) (*entity.Transaction, error) {
	transaction, err := find(id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to "+action+" this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return transaction, nil
}
