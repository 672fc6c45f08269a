package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when input is malformed or breaks a business rule.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = errors.New("password is wrong")
	// ErrMissingToken is returned when a session token is required but absent.
	ErrMissingToken = errors.New("login first")
	// ErrInvalidToken is returned when a session token cannot be verified.
	ErrInvalidToken = errors.New("invalid or expired session")
	// ErrForbidden is returned when the requester does not own the resource.
	ErrForbidden = errors.New("not allowed to modify this place")
	// ErrPlaceNotFound is returned when a place is not found.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrFetch is returned when a remote image cannot be fetched or is not an image.
	ErrFetch = errors.New("could not fetch image")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
// Wrapped errors keep their full message so validation details reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPlaceNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PLACE_NOT_FOUND")
	case errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_PASSWORD")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrFetch):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "UPSTREAM_FAILURE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
