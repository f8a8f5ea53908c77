package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WAL_004", "Insufficient balance", http.StatusPaymentRequired),
			expected: "[WAL_004] Insufficient balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("WAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestSecurityErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidSignature", ErrInvalidSignature(), "SEC_001", 401},
		{"TokenExpired", ErrTokenExpired(), "SEC_002", 401},
		{"HardwareMismatch", ErrHardwareMismatch(), "SEC_003", 403},
		{"MalformedToken", ErrMalformedToken(), "SEC_004", 401},
		{"LocalOnly", ErrLocalOnly(), "SEC_005", 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestWalletErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidAddress", ErrInvalidAddress("RB_0"), "WAL_001", 400},
		{"InvalidAmount", ErrInvalidAmount(), "WAL_002", 400},
		{"UnknownCoin", ErrUnknownCoin("DOGE"), "WAL_003", 400},
		{"InsufficientBalance", ErrInsufficientBalance(10, 50), "WAL_004", 402},
		{"DoubleSpend", ErrDoubleSpend(), "WAL_005", 409},
		{"NonceUsed", ErrNonceUsed(3), "WAL_006", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestInsufficientBalanceMessage(t *testing.T) {
	assert.Equal(t, "Insufficient balance: have 10, need 50.5", ErrInsufficientBalance(10, 50.5).Message)
}

func TestRateLimitErrors(t *testing.T) {
	daily := ErrDailyLimitExceeded("Daily limit exceeded: 18.50/20 EUR used")
	assert.Equal(t, "RATE_001", daily.Code)
	assert.Equal(t, 429, daily.HTTPStatus)
	assert.Equal(t, "Daily limit exceeded: 18.50/20 EUR used", daily.Message)

	assert.Equal(t, "RATE_002", ErrMinuteLimitExceeded("x").Code)
	assert.Equal(t, "RATE_003", ErrRateLimitExceeded().Code)
}

func TestIdentityErrors(t *testing.T) {
	assert.Equal(t, "ID_001", ErrIdentityNotInitialized().Code)
	assert.Equal(t, 503, ErrIdentityUnavailable().HTTPStatus)

	inner := fmt.Errorf("permission denied")
	storage := ErrIdentityStorage(inner)
	assert.Equal(t, "ID_003", storage.Code)
	assert.True(t, errors.Is(storage, inner))
}

func TestLedgerErrors(t *testing.T) {
	v := ErrValidationFailed("Invalid nonce: 1 <= 1 (replay attack?)")
	assert.Equal(t, "LED_001", v.Code)
	assert.Equal(t, 422, v.HTTPStatus)
	assert.Contains(t, v.Message, "replay attack")

	inner := fmt.Errorf("pg: connection closed")
	u := ErrLedgerUnavailable(inner)
	assert.Equal(t, "LED_002", u.Code)
	assert.Equal(t, 503, u.HTTPStatus)
	assert.True(t, errors.Is(u, inner))

	nf := ErrNotFound("Contract")
	assert.Contains(t, nf.Message, "Contract")
	assert.Equal(t, 404, nf.HTTPStatus)
}

func TestTransferErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"FileNotFound", ErrFileNotFound("/tmp/x"), "XFER_001", 404},
		{"InvalidPackage", ErrInvalidPackage("bad magic"), "XFER_002", 400},
		{"ContractState", ErrContractState("rejected", "accepted"), "XFER_003", 409},
		{"ContractExpired", ErrContractExpired(), "XFER_004", 410},
		{"IntegrityMismatch", ErrIntegrityMismatch("aa", "bb"), "XFER_005", 422},
		{"ContractParty", ErrContractParty(), "XFER_006", 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "Contract is rejected, expected accepted", ErrContractState("rejected", "accepted").Message)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("disk full")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	assert.Equal(t, "SYS_002", ErrStorageFailure(inner).Code)
	assert.Equal(t, "SYS_003", ErrEncryptionFailure(inner).Code)
	assert.Equal(t, 400, Validation("bad").HTTPStatus)
}
