package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCarNotFound is returned when a car id does not exist in the catalog.
	ErrCarNotFound = errors.New("car not found")
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRole is returned when a registration carries an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidCategory is returned when a car carries an unknown category.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidYear is returned when a car's year is out of range.
	ErrInvalidYear = errors.New("year out of range")
	// ErrInvalidPrice is returned when a car's price is negative.
	ErrInvalidPrice = errors.New("price cannot be negative")
	// ErrInvalidQuantity is returned when a cart quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are
// reported as a generic 500; callers log the underlying cause server-side.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCarNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CAR_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrInvalidYear):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_YEAR")
	case errors.Is(err, ErrInvalidPrice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
