package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationNotFound is returned when a notification does not exist or is not owned by the caller.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrTipGenerationFailed is returned when no tip could be produced.
	ErrTipGenerationFailed = errors.New("failed to generate tip")
)

// NotificationErrorCode defines error codes for notification errors.
type NotificationErrorCode string

const (
	ErrCodeNotificationNotFound NotificationErrorCode = "NTF-010001"
	ErrCodeTipGenerationFailed  NotificationErrorCode = "NTF-020001"
)

// NotificationError represents a notification error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{Code: code, Message: message, Err: err}
}
