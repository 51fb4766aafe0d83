// Package errors provides custom error types for the Estudio API.
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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrInvalidRole    = &AppError{Code: "INVALID_ROLE", Message: "Unknown user role", StatusCode: http.StatusBadRequest}
)

// Client errors.
var (
	ErrClientNotFound = &AppError{Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound}
	ErrInvalidEmail   = &AppError{Code: "INVALID_EMAIL", Message: "Email address is not valid", StatusCode: http.StatusBadRequest}
)

// Project errors.
var (
	ErrProjectNotFound     = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
	ErrInvalidDisplayID    = &AppError{Code: "INVALID_DISPLAY_ID", Message: "Project display ID must be exactly 3 characters", StatusCode: http.StatusBadRequest}
	ErrProjectNameTooShort = &AppError{Code: "PROJECT_NAME_TOO_SHORT", Message: "Project name must be at least 5 characters", StatusCode: http.StatusBadRequest}
	ErrDuplicateDisplayID  = &AppError{Code: "DUPLICATE_DISPLAY_ID", Message: "A project with this display ID already exists", StatusCode: http.StatusConflict}
	ErrInvalidStatus       = &AppError{Code: "INVALID_STATUS", Message: "Unknown project status", StatusCode: http.StatusBadRequest}
)

// Statement errors.
var (
	ErrStatementParse    = &AppError{Code: "STATEMENT_PARSE", Message: "The XML file could not be parsed as a bank statement", StatusCode: http.StatusBadRequest}
	ErrStatementConflict = &AppError{Code: "STATEMENT_CONFLICT", Message: "A statement starting on this date already exists", StatusCode: http.StatusConflict}
	ErrStatementNotFound = &AppError{Code: "STATEMENT_NOT_FOUND", Message: "Statement not found", StatusCode: http.StatusNotFound}
)

// Allocation errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrAllocationNotFound  = &AppError{Code: "ALLOCATION_NOT_FOUND", Message: "Transaction has no allocation", StatusCode: http.StatusNotFound}
	ErrUnbalancedSplits    = &AppError{Code: "UNBALANCED_SPLITS", Message: "Prorated splits must add up to the transaction amount", StatusCode: http.StatusBadRequest}
	ErrEmptySplits         = &AppError{Code: "EMPTY_SPLITS", Message: "A prorated allocation needs at least one split", StatusCode: http.StatusBadRequest}
)
