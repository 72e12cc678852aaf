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

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal is returned when an unexpected failure should not leak details to callers.
var ErrInternal = errors.New("internal error")

// Ledger and saga failures.
var (
	// ErrLedgerIntegrityViolation is returned when debits and credits do not balance or an amount is not positive.
	ErrLedgerIntegrityViolation = errors.New("ledger integrity violation")

	// ErrPeriodClosed is returned when a posting targets a closed accounting period.
	ErrPeriodClosed = errors.New("accounting period is closed")

	// ErrPeriodNotFound is returned in strict mode when no period covers the posting date.
	ErrPeriodNotFound = errors.New("no accounting period covers the date")

	// ErrChartOfAccountsMisconfigured is returned when a builder needs an account code the tenant does not have.
	ErrChartOfAccountsMisconfigured = errors.New("chart of accounts misconfigured")

	// ErrInvalidStateTransition is returned when a saga transition does not match the persisted status.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrAccountConfigurationMissing is returned when no account is routed for a payment method.
	ErrAccountConfigurationMissing = errors.New("account configuration missing")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSuccessorAlreadyClosed is returned when reopening a period whose successor is closed.
	ErrSuccessorAlreadyClosed = errors.New("successor period already closed")

	// ErrTransactionReversed is returned by checkout when the transaction ended up reversed.
	ErrTransactionReversed = errors.New("marketplace transaction reversed")
)

// AppError wraps an underlying error with an HTTP-style status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPeriodNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrLedgerIntegrityViolation),
		errors.Is(err, ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, ErrPeriodClosed),
		errors.Is(err, ErrInvalidStateTransition),
		errors.Is(err, ErrSuccessorAlreadyClosed),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrChartOfAccountsMisconfigured),
		errors.Is(err, ErrAccountConfigurationMissing),
		errors.Is(err, ErrTransactionReversed):
		return http.StatusUnprocessableEntity
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
