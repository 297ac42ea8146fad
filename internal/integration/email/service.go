package email

import (
	"context"
	"fmt"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	return s.enqueue(ctx, entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		"Redefinir sua senha - Ecooy",
		map[string]any{
			"user_name":  input.UserName,
			"reset_url":  input.ResetURL,
			"expires_in": input.ExpiresIn,
		},
	))
}

// QueueWelcomeEmail queues the signup greeting.
func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	appURL := input.AppURL
	if appURL == "" {
		appURL = s.appBaseURL
	}
	return s.enqueue(ctx, entity.NewEmailJob(
		entity.TemplateWelcome,
		input.UserEmail,
		input.UserName,
		"Bem-vindo ao Ecooy!",
		map[string]any{
			"user_name": input.UserName,
			"app_url":   appURL,
		},
	))
}

// QueueGoalReachedEmail queues the goal celebration email.
func (s *Service) QueueGoalReachedEmail(ctx context.Context, input adapter.QueueGoalReachedInput) error {
	return s.enqueue(ctx, entity.NewEmailJob(
		entity.TemplateGoalReached,
		input.UserEmail,
		input.UserName,
		fmt.Sprintf("Meta \"%s\" alcançada! - Ecooy", input.GoalName),
		map[string]any{
			"user_name":     input.UserName,
			"goal_name":     input.GoalName,
			"target_amount": input.TargetAmount,
			"saved_amount":  input.SavedAmount,
			"app_url":       s.appBaseURL,
		},
	))
}

// QueueSalaryDayEmail queues the salary day reminder.
func (s *Service) QueueSalaryDayEmail(ctx context.Context, input adapter.QueueSalaryDayInput) error {
	return s.enqueue(ctx, entity.NewEmailJob(
		entity.TemplateSalaryDay,
		input.UserEmail,
		input.UserName,
		"Dia do pagamento! - Ecooy",
		map[string]any{
			"user_name":      input.UserName,
			"salary":         input.Salary,
			"fixed_expenses": input.FixedExpenses,
			"available":      input.Available,
			"app_url":        s.appBaseURL,
		},
	))
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", job.TemplateType),
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
