package errors

import "fmt"

// ErrNotFound represents a "not found" error
// This should be used when a requested resource doesn't exist
var ErrNotFound = &NotFoundError{}

// NotFoundError is a sentinel error for resources that are not found
type NotFoundError struct {
	Resource string
	Message  string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return "resource not found"
}

// Is implements the error interface for error comparison
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// NewNotFoundError creates a new NotFoundError with a custom message
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// ErrValidation represents a validation error
// This should be used when client input fails validation
var ErrValidation = &ValidationError{}

// ValidationError is a sentinel error for validation failures
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field: %s", e.Field)
	}
	return "validation error"
}

// Is implements the error interface for error comparison
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError with a custom message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrProviderUnavailable represents an external AI provider failure
// (embedding or generation). The answering pipeline recovers it into a
// fixed apology response instead of surfacing a raw error to callers.
var ErrProviderUnavailable = &ProviderUnavailableError{}

// ProviderUnavailableError is a sentinel error for provider outages
type ProviderUnavailableError struct {
	Provider string
	Err      error
}

// Error implements the error interface
func (e *ProviderUnavailableError) Error() string {
	if e.Provider != "" && e.Err != nil {
		return fmt.Sprintf("%s provider unavailable: %v", e.Provider, e.Err)
	}
	if e.Provider != "" {
		return fmt.Sprintf("%s provider unavailable", e.Provider)
	}
	return "provider unavailable"
}

// Unwrap returns the underlying provider error
func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// Is implements the error interface for error comparison
func (e *ProviderUnavailableError) Is(target error) bool {
	_, ok := target.(*ProviderUnavailableError)
	return ok
}

// NewProviderUnavailableError wraps a provider failure
func NewProviderUnavailableError(provider string, err error) *ProviderUnavailableError {
	return &ProviderUnavailableError{
		Provider: provider,
		Err:      err,
	}
}
