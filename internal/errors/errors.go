// Package errors provides custom error types for the fintrack API and client
// core. All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to callers.
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

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrAuthNotReady = &AppError{Code: "AUTH_NOT_READY", Message: "Session has no credential yet", StatusCode: http.StatusUnauthorized}
)

// Validation errors. These are rejected before any remote call is made.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount   = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidLimit    = &AppError{Code: "INVALID_LIMIT", Message: "Budget limit must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidCategory = &AppError{Code: "INVALID_CATEGORY", Message: "Unknown expense category", StatusCode: http.StatusBadRequest}
)

// Expense and budget errors.
var (
	ErrExpenseNotFound     = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrBudgetLimitNotFound = &AppError{Code: "BUDGET_LIMIT_NOT_FOUND", Message: "No budget limit set for this category", StatusCode: http.StatusNotFound}
)

// Gateway errors.
var (
	ErrMutationInFlight = &AppError{Code: "MUTATION_IN_FLIGHT", Message: "A mutation of this kind is already in progress", StatusCode: http.StatusConflict}
	ErrRemoteFailure    = &AppError{Code: "REMOTE_FAILURE", Message: "The remote API call failed; local state is unchanged", StatusCode: http.StatusBadGateway}
)

// General errors.
var (
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
