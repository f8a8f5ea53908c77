package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEventType classifies a security finding.
type SecurityEventType string

const (
	EventVMDetected            SecurityEventType = "VM_DETECTED"
	EventVMEntropyCreated      SecurityEventType = "VM_ENTROPY_CREATED"
	EventHardwareMismatch      SecurityEventType = "HARDWARE_MISMATCH"
	EventVMCloneDetected       SecurityEventType = "VM_CLONE_DETECTED"
	EventIdentityCreated       SecurityEventType = "SECURE_IDENTITY_CREATED"
	EventIdentityUnavailable   SecurityEventType = "IDENTITY_UNAVAILABLE"
	EventUnregisteredSender    SecurityEventType = "UNREGISTERED_SENDER"
	EventTransactionRejected   SecurityEventType = "TRANSACTION_REJECTED"
	EventSessionTokenRejected  SecurityEventType = "SESSION_TOKEN_REJECTED"
	EventContractSignatureFail SecurityEventType = "CONTRACT_SIGNATURE_INVALID"
)

// SecurityEvent is one line of the append-only security log.
type SecurityEvent struct {
	ID        uuid.UUID         `json:"id"`
	Type      SecurityEventType `json:"type"`
	Details   map[string]any    `json:"details,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewSecurityEvent stamps an event with a fresh id and time.
func NewSecurityEvent(t SecurityEventType, details map[string]any, now time.Time) *SecurityEvent {
	return &SecurityEvent{
		ID:        uuid.New(),
		Type:      t,
		Details:   details,
		CreatedAt: now.UTC(),
	}
}
