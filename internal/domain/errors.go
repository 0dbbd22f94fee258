package domain

import "errors"

// ErrValidation marks request errors that are detected before any backend call.
var ErrValidation = errors.New("validation failed")

var (
	ErrSessionRequired   = validationError("User ID is required")
	ErrImageRequired     = validationError("Template image is required")
	ErrDirectiveRequired = validationError("Detail modify is required")
	ErrDirectiveInvalid  = validationError("Detail modify must be one of style, add or remove")
	ErrElementRequired   = validationError("Element is required for add and remove")
	ErrModeInvalid       = validationError("Unsupported generation mode")
)

// ValidationError is a user-facing message that also matches ErrValidation.
type ValidationError struct {
	Message string
}

func validationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
