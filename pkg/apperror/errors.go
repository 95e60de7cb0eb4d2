package apperror

import (
	"errors"
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

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
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

// UserMessage returns the message safe to show to the end user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// ---- Authentication (AUTH) ----

// ErrNotAuthenticated is returned when no identity is attached to the session.
// action completes the sentence "Please sign in to ...".
func ErrNotAuthenticated(action string) *AppError {
	return New("AUTH_001", "Please sign in to "+action, http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- KYC (KYC) ----

func ErrKycNotVerified() *AppError {
	return New("KYC_001", "Please complete KYC verification before sending money", http.StatusForbidden)
}

func ErrKycAlreadySubmitted() *AppError {
	return New("KYC_002", "KYC verification is already under review or complete", http.StatusConflict)
}

func ErrKycSubmissionInFlight() *AppError {
	return New("KYC_003", "A KYC submission is already in progress", http.StatusConflict)
}

// ---- Transfers (XFER) ----

func ErrRateUnavailable() *AppError {
	return New("XFER_001", "Exchange rate not available. Please try again.", http.StatusServiceUnavailable)
}

func ErrInvalidRecipientAddress() *AppError {
	return New("XFER_002", "Invalid recipient wallet address", http.StatusBadRequest)
}

func ErrSubmissionInFlight() *AppError {
	return New("XFER_003", "A transfer submission is already in progress", http.StatusConflict)
}

// ---- Remote ledger (LEDGER) ----

// ErrExternalWriteFailed surfaces a failed ledger write. The external error's
// message is shown to the user; fallback is used when it has none.
func ErrExternalWriteFailed(fallback string, err error) *AppError {
	msg := fallback
	if err != nil {
		var appErr *AppError
		if errors.As(err, &appErr) {
			msg = appErr.Message
		} else if s := err.Error(); s != "" {
			msg = s
		}
	}
	return Wrap("LEDGER_001", msg, http.StatusBadGateway, err)
}

// ---- Wallet provider (WAL) ----

func ErrProviderMissing() *AppError {
	return New("WAL_001", "No wallet provider is available. Please install a browser wallet to continue.", http.StatusServiceUnavailable)
}

func ErrProviderRejected(err error) *AppError {
	return Wrap("WAL_002", "Wallet request was rejected", http.StatusForbidden, err)
}

func ErrWalletProvider(err error) *AppError {
	return Wrap("WAL_003", "Wallet provider error", http.StatusBadGateway, err)
}

// ---- Request (REQ / RES) ----

// Validation returns a REQ_001 validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
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

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_002", "Encryption service failure", http.StatusInternalServerError, err)
}
