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

// ---- Security & Session Tokens (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_001", "Invalid signature", http.StatusUnauthorized)
}

func ErrTokenExpired() *AppError {
	return New("SEC_002", "Session token expired", http.StatusUnauthorized)
}

func ErrHardwareMismatch() *AppError {
	return New("SEC_003", "Session token was issued for different hardware", http.StatusForbidden)
}

func ErrMalformedToken() *AppError {
	return New("SEC_004", "Malformed session token", http.StatusUnauthorized)
}

func ErrLocalOnly() *AppError {
	return New("SEC_005", "Endpoint is only available locally", http.StatusForbidden)
}

// ---- Wallet (WAL) ----

func ErrInvalidAddress(addr string) *AppError {
	return New("WAL_001", fmt.Sprintf("Invalid address: %s", addr), http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_002", "Amount must be positive", http.StatusBadRequest)
}

func ErrUnknownCoin(symbol string) *AppError {
	return New("WAL_003", fmt.Sprintf("Unknown coin: %s", symbol), http.StatusBadRequest)
}

func ErrInsufficientBalance(have, need float64) *AppError {
	return New("WAL_004", fmt.Sprintf("Insufficient balance: have %g, need %g", have, need), http.StatusPaymentRequired)
}

func ErrDoubleSpend() *AppError {
	return New("WAL_005", "Transaction already submitted", http.StatusConflict)
}

func ErrNonceUsed(nonce uint64) *AppError {
	return New("WAL_006", fmt.Sprintf("Nonce %d has already been used", nonce), http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

// ErrDailyLimitExceeded carries the human-readable denial reason.
func ErrDailyLimitExceeded(reason string) *AppError {
	return New("RATE_001", reason, http.StatusTooManyRequests)
}

func ErrMinuteLimitExceeded(reason string) *AppError {
	return New("RATE_002", reason, http.StatusTooManyRequests)
}

func ErrRateLimitExceeded() *AppError {
	return New("RATE_003", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Identity (ID) ----

func ErrIdentityNotInitialized() *AppError {
	return New("ID_001", "Identity store not initialized", http.StatusServiceUnavailable)
}

func ErrIdentityUnavailable() *AppError {
	return New("ID_002", "Identity unavailable on this hardware", http.StatusServiceUnavailable)
}

func ErrIdentityStorage(err error) *AppError {
	return Wrap("ID_003", "Secure storage failure", http.StatusInternalServerError, err)
}

// ---- Ledger (LED) ----

// ErrValidationFailed carries every rejection reason joined together.
func ErrValidationFailed(reason string) *AppError {
	return New("LED_001", "Transaction validation failed: "+reason, http.StatusUnprocessableEntity)
}

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("LED_002", "Ledger unavailable", http.StatusServiceUnavailable, err)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- File Transfer (XFER) ----

func ErrFileNotFound(path string) *AppError {
	return New("XFER_001", fmt.Sprintf("File not found: %s", path), http.StatusNotFound)
}

// ErrInvalidPackage reports a container that cannot be parsed.
func ErrInvalidPackage(reason string) *AppError {
	return New("XFER_002", "Invalid .rangerblock package: "+reason, http.StatusBadRequest)
}

func ErrContractState(status, want string) *AppError {
	return New("XFER_003", fmt.Sprintf("Contract is %s, expected %s", status, want), http.StatusConflict)
}

func ErrContractExpired() *AppError {
	return New("XFER_004", "Contract has expired", http.StatusGone)
}

func ErrIntegrityMismatch(expected, got string) *AppError {
	return New("XFER_005", fmt.Sprintf("File verification failed: expected %s, got %s", expected, got), http.StatusUnprocessableEntity)
}

func ErrContractParty() *AppError {
	return New("XFER_006", "Receiver does not match contract", http.StatusForbidden)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrStorageFailure(err error) *AppError {
	return Wrap("SYS_002", "Storage failure", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYS_004", message, http.StatusBadRequest)
}
