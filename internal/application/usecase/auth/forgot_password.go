package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecooy/backend/internal/application/adapter"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// ForgotPasswordInput represents the input for forgot password request.
type ForgotPasswordInput struct {
	Email string
}

const forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordOutput represents the output of forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles forgot password logic.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        appBaseURL,
	}
}

// Execute performs the forgot password request.
// Always returns success to prevent email enumeration.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Still report success to prevent enumeration
		slog.Debug("Forgot password requested for unknown email", "email", email)
		return &ForgotPasswordOutput{
			Message: forgotPasswordMessage,
		}, nil
	}

	resetToken, err := uc.resetTokenService.IssueResetToken(ctx, user)
	if err != nil {
		slog.Error("Failed to generate reset token", "error", err, "user_id", user.ID)
		return &ForgotPasswordOutput{
			Message: forgotPasswordMessage,
		}, nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, resetToken.Token)

	if uc.emailService != nil {
		err = uc.emailService.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
			UserID:    user.ID.String(),
			UserEmail: user.Email,
			UserName:  user.Name,
			ResetURL:  resetURL,
			ExpiresIn: "1 hora",
		})
		if err != nil {
			slog.Error("Failed to queue password reset email", "error", err, "user_id", user.ID)
		} else {
			slog.Info("Password reset email queued", "user_id", user.ID)
		}
	} else {
		slog.Info("Password reset token generated without email service",
			"user_id", user.ID,
			"reset_url", resetURL,
		)
	}

	return &ForgotPasswordOutput{
		Message: forgotPasswordMessage,
	}, nil
}
