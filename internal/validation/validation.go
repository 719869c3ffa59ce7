// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules (like required fields,
// length bounds or enum membership) defined in struct tags and extracts
// validation errors into a format the client can understand. All fields are
// checked; every violation is collected rather than failing fast.
package validation

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator instances cache
// struct metadata, so one per process is the intended usage.
var validate = validator.New()

// Struct runs tag-based validation on v. Request types call this from their
// Validate method.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - define a request struct with validator tags (`validate:"required,min=5"`)
//   - implement Validate() error that returns validation.Struct(req)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue that cannot be
// expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors satisfying
// the error interface.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}
