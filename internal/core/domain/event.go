package domain

import "time"

// EventKind names something observers can subscribe to.
type EventKind string

const (
	EventTransferAccepted  EventKind = "transfer_accepted"
	EventTransferRejected  EventKind = "transfer_rejected"
	EventBlockApplied      EventKind = "block_applied"
	EventContractCreated   EventKind = "contract_created"
	EventContractAccepted  EventKind = "contract_accepted"
	EventContractRejected  EventKind = "contract_rejected"
	EventContractCompleted EventKind = "contract_completed"
)

// Event is a typed notification published on the event bus.
// Exactly one of the payload pointers is set, matching Kind.
type Event struct {
	Kind       EventKind         `json:"kind"`
	At         time.Time         `json:"at"`
	Receipt    *TransferReceipt  `json:"receipt,omitempty"`
	Validation *ValidationResult `json:"validation,omitempty"`
	Block      *Block            `json:"block,omitempty"`
	Contract   *TransferContract `json:"contract,omitempty"`
}
