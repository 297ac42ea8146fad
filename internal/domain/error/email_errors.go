package error

import "errors"

// Outbound mail errors. Sending is asynchronous, so none of these reach an
// API client; they end up in the worker log and in email_queue.last_error.
var (
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrDeliveryRejected means the provider refused the message for good.
	ErrDeliveryRejected = errors.New("email rejected by provider")

	// ErrDeliveryDeferred means the provider may accept the message later.
	ErrDeliveryDeferred = errors.New("email delivery deferred")

	// ErrRecipientDeleted cancels mail still queued for a deleted account.
	ErrRecipientDeleted = errors.New("recipient account deleted")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeRecipientDeleted EmailErrorCode = "EMAIL-010002"

	// Delivery errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether retrying the job cannot help.
// Template problems count as permanent because the stored job never changes.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	switch emailErr.Code {
	case ErrCodePermanentEmailFailure, ErrCodeInvalidTemplate, ErrCodeTemplateRenderFailed, ErrCodeRecipientDeleted:
		return true
	}
	return false
}
