package reqcheck

import (
	"errors"
	"fmt"
)

// Component names one part of an HTTP request subject to independent
// validation.
type Component string

// The four request components a route can bind schemas to.
const (
	ComponentPath  Component = "path"
	ComponentQuery Component = "query"
	ComponentBody  Component = "body"
	ComponentForm  Component = "form"
)

// FieldError represents a single field-level validation issue.
//
// Field is the field path in dot/bracket notation matching the schema's
// nesting (e.g. "address.street", "tags[1]"). An empty Field means the error
// applies to the component as a whole, such as an unparseable request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports that one request component failed validation.
// It carries the failing component name and an ordered list of field errors.
//
// Validation middleware returns *ValidationError from the handler chain;
// the ReqCheck extension renders it as an HTTP 400 response. Applications
// that skip extension setup must handle it in their own error handler.
type ValidationError struct {
	Component Component    `json:"component"`
	Fields    []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %s: %d invalid field(s)", e.Component, len(e.Fields))
}

// Is reports whether target is also a *ValidationError, so that
// errors.Is(err, &ValidationError{}) matches any validation failure.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

func newValidationError(component Component, fields []FieldError) *ValidationError {
	return &ValidationError{Component: component, Fields: fields}
}

// extractionError builds the ValidationError used when a component's raw data
// cannot be read from the request at the transport level.
func extractionError(component Component, message string) *ValidationError {
	return newValidationError(component, []FieldError{{Field: "", Message: message}})
}

// ErrNoValidRequest is returned by FromContext when no validated request is
// attached to the current context, i.e. the route was not wrapped by any of
// the validation middleware in this package.
var ErrNoValidRequest = errors.New("reqcheck: no validated request in context")
