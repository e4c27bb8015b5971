// Package errs defines the application error taxonomy.
//
// Every domain failure (validation, conflict, not found, auth, internal)
// is raised as an *HTTPError carrying a machine-readable code and an HTTP
// status hint. The global error handler in internal/middleware is the only
// place that turns these into response bodies, so clients always see the
// same envelope:
//
//	{ "success": false, "message": "...", "errorCode": "...", "errors": [...] }
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "shortCode", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the application error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "CONFLICT", "UOM_ALREADY_EXISTS")
//   - Message: human-friendly message
//   - Status: HTTP status code the boundary handler should write
//   - Errors: optional per-field validation errors
type HTTPError struct {
	Code    string
	Message string
	Status  int
	Errors  []FieldError
}

// Error satisfies the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It matches on type
// only, so errors.Is(err, &HTTPError{}) checks "is this one of ours"
// without comparing codes.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// ErrorResponse is the wire shape of any failed request.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	ErrorCode string       `json:"errorCode"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// Envelope returns the response body for this error.
func (e *HTTPError) Envelope() ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Message:   e.Message,
		ErrorCode: e.Code,
		Errors:    e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES format, e.g. "Bad Request" -> "BAD_REQUEST".
// Used to derive stable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
