package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrWeakPassword, http.StatusBadRequest},
		{ErrInvalidRole, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidClient, http.StatusUnauthorized},
		{ErrInvalidSession, http.StatusUnauthorized},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrInactiveAccount, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrSelfLockout, http.StatusForbidden},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrCustomerNotFound, http.StatusNotFound},
		{ErrNoteNotFound, http.StatusNotFound},
		{ErrSessionNotFound, http.StatusNotFound},
		{ErrEmailExists, http.StatusConflict},
		{ErrServiceUnavailable, http.StatusServiceUnavailable},
		{ErrInternal, http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ToHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrappedErrorKeepsStatus(t *testing.T) {
	wrapped := WrapError(ErrInvalidSession, errors.New("db says no"))

	if got := ToHTTPStatus(wrapped); got != http.StatusUnauthorized {
		t.Errorf("ToHTTPStatus(wrapped) = %d, want %d", got, http.StatusUnauthorized)
	}
	if !errors.Is(wrapped, ErrInvalidSession) {
		t.Error("errors.Is should match the sentinel by code")
	}
}

func TestWrapThroughFmt(t *testing.T) {
	wrapped := fmt.Errorf("outer context: %w", ErrCustomerNotFound)

	if got := ToHTTPStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("ToHTTPStatus = %d, want %d", got, http.StatusNotFound)
	}
	if GetErrorMessage(wrapped) != ErrCustomerNotFound.Message {
		t.Errorf("GetErrorMessage = %q, want %q", GetErrorMessage(wrapped), ErrCustomerNotFound.Message)
	}
}

func TestGetDomainError(t *testing.T) {
	if GetDomainError(errors.New("plain")) != nil {
		t.Error("plain errors must not surface as domain errors")
	}
	if de := GetDomainError(WrapError(ErrForbidden, errors.New("x"))); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("GetDomainError = %+v, want FORBIDDEN", de)
	}
}
