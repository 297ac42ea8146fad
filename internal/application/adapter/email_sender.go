package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePasswordResetEmail queues a password reset email.
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error

	// QueueWelcomeEmail queues the email sent right after signup.
	QueueWelcomeEmail(ctx context.Context, input QueueWelcomeInput) error

	// QueueGoalReachedEmail queues the email sent when a goal hits its target.
	QueueGoalReachedEmail(ctx context.Context, input QueueGoalReachedInput) error

	// QueueSalaryDayEmail queues the salary day reminder.
	QueueSalaryDayEmail(ctx context.Context, input QueueSalaryDayInput) error
}

// QueuePasswordResetInput represents the input for queueing a password reset email.
type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// QueueWelcomeInput represents the input for queueing a welcome email.
type QueueWelcomeInput struct {
	UserEmail string
	UserName  string
	AppURL    string
}

// QueueGoalReachedInput represents the input for queueing a goal reached email.
type QueueGoalReachedInput struct {
	UserEmail    string
	UserName     string
	GoalName     string
	TargetAmount string
	SavedAmount  string
}

// QueueSalaryDayInput represents the input for queueing a salary day reminder.
type QueueSalaryDayInput struct {
	UserEmail     string
	UserName      string
	Salary        string
	FixedExpenses string
	Available     string
}
