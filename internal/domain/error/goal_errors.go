// Package error defines domain-specific errors for the Ecooy application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidDepositAmount is returned when a deposit is zero or negative.
	ErrInvalidDepositAmount = errors.New("deposit amount must be greater than zero")

	// ErrEmptyGoalName is returned when the goal name is blank.
	ErrEmptyGoalName = errors.New("goal name is required")

	// ErrGoalNameTooLong is returned when the goal name exceeds the maximum length.
	ErrGoalNameTooLong = errors.New("goal name too long")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTargetAmount  GoalErrorCode = "GOL-010001"
	ErrCodeInvalidDepositAmount GoalErrorCode = "GOL-010002"
	ErrCodeEmptyGoalName        GoalErrorCode = "GOL-010003"
	ErrCodeGoalNameTooLong      GoalErrorCode = "GOL-010004"
	ErrCodeMissingGoalFields    GoalErrorCode = "GOL-010005"

	// Access errors (02XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-020001"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-020002"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
