package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors for policy decisions at the transaction
// boundary (e.g. which kinds are rethrown past a rolled-back unit of work).
type ErrorKind string

const (
	// KindNotFound indicates a requested aggregate or dependency has no bound instance
	KindNotFound ErrorKind = "not_found"
	// KindConfiguration indicates a wiring defect such as an ambiguous dependency binding
	KindConfiguration ErrorKind = "configuration"
	// KindDomainRule indicates a domain invariant would be broken
	KindDomainRule ErrorKind = "domain_rule"
	// KindPersistence indicates a failure at the session boundary during commit or flush
	KindPersistence ErrorKind = "persistence"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches sentinel errors by code so errors.Is works across instances
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error wrapping the given cause
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: e.Message, cause: cause}
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// NewRuleViolation creates a domain-rule violation error
func NewRuleViolation(code, message string) *DomainError {
	return NewDomainError(KindDomainRule, code, message)
}

// KindOf reports the kind of err if it is a DomainError, or empty string otherwise
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError(KindDomainRule, "ALREADY_EXISTS", "Resource already exists")
	ErrConfiguration     = NewDomainError(KindConfiguration, "CONFIGURATION_ERROR", "Invalid dependency wiring")
	ErrAmbiguousBinding  = NewDomainError(KindConfiguration, "AMBIGUOUS_BINDING", "More than one binding matches the requested type")
	ErrPersistence       = NewDomainError(KindPersistence, "PERSISTENCE_ERROR", "Failure at the persistence boundary")
	ErrInvalidState      = NewDomainError(KindDomainRule, "INVALID_STATE", "Operation not allowed in current state")
	ErrWithoutPermission = NewDomainError(KindDomainRule, "WITHOUT_PERMISSION", "Partner status does not allow this operation")
)
