package errs

import (
	"net/http"
)

func newError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized error. Used for requests
// with no credentials at all: missing bearer token or missing API key.
func NewUnauthorizedError(message string) *HTTPError {
	return newError(http.StatusUnauthorized, message)
}

// NewForbiddenError creates a 403 Forbidden error. Used both for invalid or
// expired tokens and for role mismatches.
func NewForbiddenError(message string) *HTTPError {
	return newError(http.StatusForbidden, message)
}

// NewBadRequestError creates a 400 Bad Request error with optional
// field-level validation errors.
func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	err := newError(http.StatusBadRequest, message)
	err.Errors = fieldErrors
	return err
}

// NewNotFoundError creates a 404 Not Found error.
func NewNotFoundError(message string) *HTTPError {
	return newError(http.StatusNotFound, message)
}

// NewConflictError creates a 409 Conflict error.
func NewConflictError(message string) *HTTPError {
	return newError(http.StatusConflict, message)
}

// NewTooManyRequestsError creates a 429 error carrying the number of seconds
// after which the client's window resets.
func NewTooManyRequestsError(message string, retryAfterSeconds int) *HTTPError {
	err := newError(http.StatusTooManyRequests, message)
	err.RetryAfter = retryAfterSeconds
	return err
}

// NewUnsupportedMediaTypeError creates a 415 error for requests whose
// Content-Type is not in the accepted set.
func NewUnsupportedMediaTypeError(message string) *HTTPError {
	return newError(http.StatusUnsupportedMediaType, message)
}

// NewPayloadTooLargeError creates a 413 error for over-limit request bodies.
func NewPayloadTooLargeError(message string) *HTTPError {
	return newError(http.StatusRequestEntityTooLarge, message)
}

// NewInternalServerError creates a generic 500 error. The message is the
// bare status text on purpose: internal details are logged server-side only.
func NewInternalServerError() *HTTPError {
	return newError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// ValidationError converts a generic validation error into a 400 response.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), nil)
}
