package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrVehicleExists is returned when the registration number is already taken.
	ErrVehicleExists = errors.New("a vehicle with this registration number already exists")
	// ErrVehicleNotFound is returned when no vehicle matches (registration, owner).
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrNoToken is returned when a protected request carries no token.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken is returned when signature or expiry verification fails.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnauthorized is returned when a valid token references a user that no
	// longer exists.
	ErrUnauthorized = errors.New("unauthorized user")
)

// ValidationError carries a field-level validation message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflicts map to 400, not
// 409, matching the API contract.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrVehicleExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "REGISTRATION_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNoToken), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
