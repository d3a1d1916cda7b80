package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", NewValidationError("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"user conflict", ErrUserExists, http.StatusBadRequest, "USER_ALREADY_EXISTS"},
		{"vehicle conflict", ErrVehicleExists, http.StatusBadRequest, "REGISTRATION_TAKEN"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"vehicle not found", ErrVehicleNotFound, http.StatusNotFound, "VEHICLE_NOT_FOUND"},
		{"bad credentials", ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{"no token", ErrNoToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"deleted user", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
}
