package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured application error with HTTP status code.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`

	// SubscriptionRequired is set on denials raised by the subscription gate
	// so clients can route the user to the paywall.
	SubscriptionRequired bool `json:"subscriptionRequired,omitempty"`
	// Fields carries per-field validation messages keyed by JSON field name.
	Fields map[string]string `json:"errors,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error constructors.

func ErrNotFound(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: msg}
}

// ErrSubscriptionRequired denies access to subscriber-only content.
func ErrSubscriptionRequired() *AppError {
	return &AppError{
		Code:                 http.StatusForbidden,
		Message:              "subscription required to access this content",
		SubscriptionRequired: true,
	}
}

func ErrBadRequest(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

// ErrValidation reports malformed or missing input. It is always raised
// before anything is written.
func ErrValidation(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

// ErrValidationFields is ErrValidation with per-field details.
func ErrValidationFields(fields map[string]string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: "validation error", Fields: fields}
}

func ErrInternal(msg string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: msg, Err: err}
}

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given status code.
func HasCode(err error, code int) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
