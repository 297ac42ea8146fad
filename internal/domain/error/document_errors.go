package error

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument is returned when a stored row does not decode into a valid entity.
var ErrMalformedDocument = errors.New("malformed document")

// DocumentErrorCode defines error codes for stored document errors.
type DocumentErrorCode string

const (
	ErrCodeMalformedDocument DocumentErrorCode = "DOC-010001"
)

// DocumentError reports which document failed to decode and why.
type DocumentError struct {
	Code       DocumentErrorCode
	Collection string
	DocumentID string
	Reason     string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s %s/%s: %s", ErrMalformedDocument.Error(), e.Collection, e.DocumentID, e.Reason)
}

// Unwrap lets callers match ErrMalformedDocument with errors.Is.
func (e *DocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// NewMalformedDocumentError creates a DocumentError for a rejected row.
func NewMalformedDocumentError(collection, documentID, reason string) *DocumentError {
	return &DocumentError{
		Code:       ErrCodeMalformedDocument,
		Collection: collection,
		DocumentID: documentID,
		Reason:     reason,
	}
}
