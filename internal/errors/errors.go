// Package errors provides custom error types for the Taxinator API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authorization errors. ROLE_MISSING and ROLE_UNKNOWN are deliberately
// distinct: the first means no role was supplied at all, the second means
// the supplied label is outside the closed role set.
var (
	ErrRoleMissing = &AppError{Code: "ROLE_MISSING", Message: "Missing X-User-Role header; specify provider, broker_admin, internal_ops, api_client, or tax_engine", StatusCode: http.StatusUnauthorized}
	ErrRoleUnknown = &AppError{Code: "ROLE_UNKNOWN", Message: "Unrecognized user role", StatusCode: http.StatusBadRequest}
	ErrForbidden   = &AppError{Code: "FORBIDDEN", Message: "Role is not permitted for this operation", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Job errors.
var (
	ErrJobNotFound = &AppError{Code: "JOB_NOT_FOUND", Message: "Job not found", StatusCode: http.StatusNotFound}
)

// Ingestion errors.
var (
	ErrMalformedRecord = &AppError{Code: "MALFORMED_RECORD", Message: "Raw record could not be normalized", StatusCode: http.StatusBadRequest}
)

// Translation and export errors.
var (
	ErrUnknownVendor   = &AppError{Code: "UNKNOWN_VENDOR", Message: "Unknown vendor template", StatusCode: http.StatusBadRequest}
	ErrNothingToExport = &AppError{Code: "NOTHING_TO_EXPORT", Message: "No payload rendered for the job's target vendor", StatusCode: http.StatusBadRequest}
)
