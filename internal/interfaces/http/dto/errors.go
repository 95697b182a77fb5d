package dto

import (
	"errors"
	"net/http"

	"github.com/realestate/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when a request body fails validation
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeWithoutPermission is used when the partner's status forbids the operation
	ErrCodeWithoutPermission = "ERR_WITHOUT_PERMISSION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeWithoutPermission: http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// CodeForError maps a domain error to its API error code. Sentinel errors
// carry specific codes; anything else falls back to its kind.
func CodeForError(err error) string {
	switch {
	case errors.Is(err, shared.ErrWithoutPermission):
		return ErrCodeWithoutPermission
	case errors.Is(err, shared.ErrAlreadyExists):
		return ErrCodeAlreadyExists
	case errors.Is(err, shared.ErrInvalidState):
		return ErrCodeInvalidState
	case errors.Is(err, shared.ErrNotFound):
		return ErrCodeNotFound
	}

	switch shared.KindOf(err) {
	case shared.KindNotFound:
		return ErrCodeNotFound
	case shared.KindDomainRule:
		return ErrCodeBusinessRule
	case shared.KindConfiguration, shared.KindPersistence:
		return ErrCodeInternal
	}
	return ErrCodeUnknown
}
