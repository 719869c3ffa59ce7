// Package errs defines the error types returned to API clients.
//
// Every rejection produced by the request pipeline (rate limit, auth,
// validation, content negotiation) and every handler fault is funneled into
// an HTTPError, which serializes to the standard envelope:
//
//	{ "success": false, "code": "...", "message": "...", "status": 400,
//	  "errors": [...], "retryAfter": 900 }
package errs

import "strings"

// FieldError represents a single field-level validation error.
//
//	{ "field": "title", "error": "must be at least 5 characters" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type serialized to API clients.
//
// It implements the error interface so handlers can return it directly and
// let the global error handler write the response.
type HTTPError struct {
	// Success is always false; present so clients share one envelope with
	// successful responses.
	Success bool `json:"success"`

	// Code is a machine-friendly error code (e.g. "TOO_MANY_REQUESTS").
	Code string `json:"code"`

	// Message is the human-friendly message.
	Message string `json:"message"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Errors holds field-level validation errors, when any.
	Errors []FieldError `json:"errors,omitempty"`

	// RetryAfter is set on rate-limit rejections, in seconds.
	RetryAfter int `json:"retryAfter,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any HTTPError, regardless of
// code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores converts HTTP status text into a stable
// machine code, e.g. "Too Many Requests" -> "TOO_MANY_REQUESTS".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
