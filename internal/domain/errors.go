package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBillNotFound           = errors.New("bill not found")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrUnsupportedFileType    = errors.New("only PDF files are allowed")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrRenderFailed           = errors.New("document rendering failed")
	ErrNoRenderedDocument     = errors.New("bill has no rendered document")
	ErrStoreUnavailable       = errors.New("bill store unavailable")
)

// ValidationError reports a missing or invalid field at assembly time. It
// rejects the operation and leaves any existing record untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
