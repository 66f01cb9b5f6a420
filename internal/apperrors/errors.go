package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent modification; the caller may retry the whole command.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// Ledger posting and consistency failures.
var (
	ErrPeriodClosed              = errors.New("accounting period does not accept postings")
	ErrUnbalancedEntryStructure  = errors.New("journal entry requires at least one debit and one credit line")
	ErrUnbalancedEntry           = errors.New("journal entry debits and credits do not balance")
	ErrRateUnavailable           = errors.New("exchange rate unavailable")
	ErrDimensionNotFound         = errors.New("dimension not found")
	ErrDimensionInactive         = errors.New("dimension inactive")
	ErrMandatoryDimensionMissing = errors.New("mandatory dimension missing")
	ErrConfigurationMissing      = errors.New("control account configuration missing")
	ErrCurrencyMismatch          = errors.New("currency mismatch")
	ErrInvalidTransition         = errors.New("invalid status transition")
)

// AppError carries a status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflictError returns an AppError that matches ErrConflict.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrPeriodClosed), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrUnbalancedEntryStructure), errors.Is(err, ErrUnbalancedEntry),
		errors.Is(err, ErrDimensionNotFound), errors.Is(err, ErrDimensionInactive),
		errors.Is(err, ErrMandatoryDimensionMissing), errors.Is(err, ErrConfigurationMissing),
		errors.Is(err, ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrRateUnavailable):
		return http.StatusServiceUnavailable
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
