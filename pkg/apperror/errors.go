package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger Business Logic (LGR) ----

// Validation returns an LGR_001 invalid-input error with a caller message.
func Validation(message string) *AppError {
	return New("LGR_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("LGR_001", "Invalid amount", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New("LGR_002", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrNotFound(entity string) *AppError {
	return New("LGR_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrDuplicateTxID signals a txid uniqueness violation. Callers may retry
// with a freshly generated identifier.
func ErrDuplicateTxID(err error) *AppError {
	return Wrap("LGR_004", "Duplicate transaction identifier", http.StatusConflict, err)
}

// ErrTransactionImmutable rejects mutation of ledger entries.
// action is "Updating" or "Deleting".
func ErrTransactionImmutable(action string) *AppError {
	return New("LGR_005", fmt.Sprintf("%s transactions is not allowed", action), http.StatusMethodNotAllowed)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
