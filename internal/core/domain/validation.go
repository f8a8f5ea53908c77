package domain

import "strings"

// RejectionCode is the machine-checkable reason a transaction was refused.
type RejectionCode string

const (
	RejectInvalidSignature    RejectionCode = "invalid_signature"
	RejectInsufficientBalance RejectionCode = "insufficient_balance"
	RejectInvalidNonce        RejectionCode = "invalid_nonce"
	RejectExpired             RejectionCode = "expired"
	RejectDoubleSpend         RejectionCode = "double_spend"
	RejectUnknownSender       RejectionCode = "unknown_sender"
	RejectDailyLimit          RejectionCode = "daily_limit_exceeded"
	RejectMinuteLimit         RejectionCode = "minute_limit_exceeded"
	RejectLedgerUnavailable   RejectionCode = "ledger_unavailable"
)

// Rejection pairs a reason code with a self-diagnosing message.
type Rejection struct {
	Code    RejectionCode `json:"code"`
	Message string        `json:"message"`
}

// ValidationResult collects every failed check instead of stopping at the first.
type ValidationResult struct {
	Valid    bool        `json:"valid"`
	Errors   []Rejection `json:"errors"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Reject appends a failure and marks the result invalid.
func (r *ValidationResult) Reject(code RejectionCode, msg string) {
	r.Errors = append(r.Errors, Rejection{Code: code, Message: msg})
	r.Valid = false
}

// Reason joins every message with "; ".
func (r *ValidationResult) Reason() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether a given code was rejected.
func (r *ValidationResult) Has(code RejectionCode) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Codes lists the rejected codes in check order.
func (r *ValidationResult) Codes() []RejectionCode {
	codes := make([]RejectionCode, len(r.Errors))
	for i, e := range r.Errors {
		codes[i] = e.Code
	}
	return codes
}

// TokenFailure names which session-token check failed.
type TokenFailure string

const (
	TokenMalformed        TokenFailure = "malformed"
	TokenInvalidSignature TokenFailure = "invalid_signature"
	TokenExpired          TokenFailure = "expired"
	TokenHardwareMismatch TokenFailure = "hardware_mismatch"
)

// SessionClaims are the subject claims embedded in a session token.
type SessionClaims struct {
	UserID   string `json:"userId"`
	NodeID   string `json:"nodeId"`
	Username string `json:"username"`
}

// TokenVerification is the outcome of verifying a session token.
type TokenVerification struct {
	Valid        bool          `json:"valid"`
	Reason       TokenFailure  `json:"reason,omitempty"`
	Claims       SessionClaims `json:"claims"`
	HardwareHash string        `json:"hardwareHash,omitempty"`
	IssuedAt     int64         `json:"iat,omitempty"`
	ExpiresAt    int64         `json:"exp,omitempty"`
}
