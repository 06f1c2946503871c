package errors

import "fmt"

// APIError represents an error returned by the language service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NetworkError represents a network-related error
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new network error
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{
		Operation: operation,
		Err:       err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// SchemaError represents an input store that does not have the gathered layout
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("incorrect database type at %s: %s", e.Path, e.Reason)
}

// NewSchemaError creates a new schema error
func NewSchemaError(path, reason string) *SchemaError {
	return &SchemaError{
		Path:   path,
		Reason: reason,
	}
}

// NotFoundError represents a missing input file
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %s not found", e.Path)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{
		Path: path,
	}
}
