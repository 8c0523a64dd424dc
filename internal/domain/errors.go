package domain

import "fmt"

// Error types for consistent error handling across the service.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Permanent marks the error as not retryable.
func (e *ErrNotFound) Permanent() bool { return true }

// ErrExternalService indicates a failure in a backend call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input). Validation failures
// are caught before anything is sent to the backend.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// Permanent marks the error as not retryable.
func (e *ErrValidation) Permanent() bool { return true }

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// Permanent marks the error as not retryable.
func (e *ErrUnauthorized) Permanent() bool { return true }

// ErrSessionExpired indicates the backend rejected our bearer token. The
// session must be dropped and the frontend redirected to login; Reason is
// surfaced so the login page can explain why.
type ErrSessionExpired struct {
	Reason string
}

func (e *ErrSessionExpired) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("sessao expirada: %s", e.Reason)
	}
	return "sessao expirada"
}

// Permanent marks the error as not retryable: the rejected token will not
// become valid by trying again.
func (e *ErrSessionExpired) Permanent() bool { return true }
