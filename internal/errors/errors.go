package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match wrapped instances of the same sentinel by code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Credential errors
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "incorrect email or password")
	ErrInvalidClient      = NewDomainError("INVALID_CLIENT", "invalid client credentials")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrWeakPassword       = NewDomainError("WEAK_PASSWORD", "password must be at least 8 characters")

	// Session errors
	ErrInvalidSession  = NewDomainError("INVALID_SESSION", "refresh token is invalid, expired or revoked")
	ErrUnauthenticated = NewDomainError("UNAUTHENTICATED", "invalid or expired access token")
	ErrInactiveAccount = NewDomainError("INACTIVE_ACCOUNT", "account is inactive")

	// Authorization errors
	ErrForbidden   = NewDomainError("FORBIDDEN", "insufficient privileges")
	ErrSelfLockout = NewDomainError("SELF_LOCKOUT", "cannot deactivate or delete your own account")

	// Resource errors
	ErrUserNotFound     = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrCustomerNotFound = NewDomainError("CUSTOMER_NOT_FOUND", "customer not found")
	ErrNoteNotFound     = NewDomainError("NOTE_NOT_FOUND", "note not found")
	ErrSessionNotFound  = NewDomainError("SESSION_NOT_FOUND", "session not found")

	// Validation errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidRole  = NewDomainError("INVALID_ROLE", "unknown role")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "WEAK_PASSWORD", "INVALID_ROLE":
		return http.StatusBadRequest

	// 401 Unauthorized. Inactive accounts are reported as an
	// authentication failure so account existence is not leaked.
	case "INVALID_CREDENTIALS", "INVALID_CLIENT", "INVALID_SESSION",
		"UNAUTHENTICATED", "INACTIVE_ACCOUNT":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "SELF_LOCKOUT":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "CUSTOMER_NOT_FOUND", "NOTE_NOT_FOUND", "SESSION_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS":
		return http.StatusConflict

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
