package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinel comparisons work
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeNoProfile            = "NO_PROFILE"
	CodeGone                 = "GONE"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInvalidState         = "INVALID_STATE"
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
)

// Common domain errors
var (
	ErrUnauthenticated      = NewDomainError(CodeUnauthenticated, "Unauthorized")
	ErrForbidden            = NewDomainError(CodeForbidden, "Forbidden")
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrNoProfile            = NewDomainError(CodeNoProfile, "No associated business or profile found")
	ErrGone                 = NewDomainError(CodeGone, "Resource is no longer available")
	ErrInvalidInput         = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrAlreadyExists        = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidState         = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrSubscriptionRequired = NewDomainError(CodeSubscriptionRequired, "An active subscription is required for this feature")
)

// NewValidationError creates a validation error with a field-specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates a not-found error naming the missing resource
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewGoneError creates a gone error for resources in a terminal or expired state
func NewGoneError(message string) *DomainError {
	return NewDomainError(CodeGone, message)
}
