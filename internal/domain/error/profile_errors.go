package error

import "errors"

// Profile domain errors.
var (
	// ErrProfileNotFound is returned when the profile document does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidSalaryDay is returned when the salary day is outside 1..31.
	ErrInvalidSalaryDay = errors.New("salary day must be between 1 and 31")

	// ErrNegativeAmount is returned when salary or fixed expenses are negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTheme is returned for an unknown theme.
	ErrInvalidTheme = errors.New("theme must be light or dark")
)

// ProfileErrorCode defines error codes for profile errors.
type ProfileErrorCode string

const (
	ErrCodeProfileNotFound  ProfileErrorCode = "PRF-010001"
	ErrCodeInvalidSalaryDay ProfileErrorCode = "PRF-020001"
	ErrCodeNegativeAmount   ProfileErrorCode = "PRF-020002"
	ErrCodeInvalidTheme     ProfileErrorCode = "PRF-020003"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{Code: code, Message: message, Err: err}
}
