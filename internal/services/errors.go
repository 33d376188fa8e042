package services

import "fmt"

// ValidationError reports invalid caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing resource
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a NotFoundError for a resource
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports an operation that clashes with existing state,
// like a taken date or a duplicate email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a ConflictError
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// PaymentError reports a gateway rejection, carrying the gateway's own
// message so the customer sees the actual decline reason.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	return e.Message
}

// NewPaymentError creates a PaymentError
func NewPaymentError(message string) *PaymentError {
	return &PaymentError{Message: message}
}

// StateError reports an operation not valid in the booking's current state
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// NewStateError creates a StateError
func NewStateError(message string) *StateError {
	return &StateError{Message: message}
}
