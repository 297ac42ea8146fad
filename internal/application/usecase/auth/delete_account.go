package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// deleteConfirmation must be typed by the user to confirm deletion.
const deleteConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase removes the identity and every document it owns.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	mailQueue       adapter.EmailQueueRepository
	publisher       adapter.ChangePublisher
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	mailQueue adapter.EmailQueueRepository,
	publisher adapter.ChangePublisher,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		mailQueue:       mailQueue,
		publisher:       publisher,
	}
}

// Execute performs the account deletion. Password accounts must confirm
// with their password; federated-only accounts confirm with the DELETE text.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != "" && input.Confirmation != deleteConfirmation {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly 'DELETE'",
			nil,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			err,
		)
	}

	if user.HasPassword() {
		if !uc.passwordService.Matches(user.PasswordHash, input.Password) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidCredentials,
				"invalid password",
				domainerror.ErrInvalidCredentials,
			)
		}
	} else if input.Confirmation != deleteConfirmation {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly 'DELETE'",
			nil,
		)
	}

	if err := uc.tokenService.RevokeSessions(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	// Queued reminders must not reach an address that no longer has an account
	if uc.mailQueue != nil {
		cancelled, err := uc.mailQueue.CancelPending(ctx, user.Email, domainerror.ErrRecipientDeleted.Error())
		if err != nil {
			slog.Warn("Failed to cancel queued emails of deleted account", "user_id", user.ID, "error", err)
		} else if cancelled > 0 {
			slog.Info("Cancelled queued emails of deleted account", "user_id", user.ID, "count", cancelled)
		}
	}

	livequery.Announce(ctx, uc.publisher, entity.CollectionSessions, entity.OperationSignedOut, user.ID.String(), user.ID)

	return &DeleteAccountOutput{
		Success: true,
	}, nil
}
