package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PackageMagic identifies a sealed file container.
const PackageMagic = "RNGBLK01"

// ContractTTL is how long a receiver has to accept a contract.
const ContractTTL = 24 * time.Hour

// ContractStatus is the lifecycle state of a transfer contract.
type ContractStatus string

const (
	ContractWaitingAccept ContractStatus = "waiting_accept"
	ContractAccepted      ContractStatus = "accepted"
	ContractRejected      ContractStatus = "rejected"
	ContractCompleted     ContractStatus = "completed"
	ContractFailed        ContractStatus = "failed"
)

// PackageMetadata is the JSON header of a sealed file container.
type PackageMetadata struct {
	Magic            string    `json:"magic"`
	Version          string    `json:"version"`
	OriginalName     string    `json:"originalName"`
	OriginalExt      string    `json:"originalExt"`
	OriginalSize     int64     `json:"originalSize"`
	OriginalHash     string    `json:"originalHash"`
	CompressedSize   int64     `json:"compressedSize"`
	CompressionRatio float64   `json:"compressionRatio"`
	MimeType         string    `json:"mimeType"`
	CreatedAt        time.Time `json:"createdAt"`
	SenderID         string    `json:"senderId"`
	Signature        string    `json:"signature,omitempty"`
}

// PackageInfo describes a container written to disk.
type PackageInfo struct {
	TransferID   string          `json:"transferId"`
	PackagePath  string          `json:"packagePath"`
	OriginalHash string          `json:"originalHash"`
	PackageHash  string          `json:"packageHash"`
	OriginalSize int64           `json:"originalSize"`
	PackageSize  int64           `json:"packageSize"`
	Metadata     PackageMetadata `json:"metadata"`
}

// ExtractResult describes an unpacked container.
type ExtractResult struct {
	OutputPath     string          `json:"outputPath"`
	FileSize       int64           `json:"fileSize"`
	OriginalHash   string          `json:"originalHash"`
	ExtractedHash  string          `json:"extractedHash"`
	PackageHash    string          `json:"packageHash"`
	Verified       bool            `json:"verified"`
	SignatureValid *bool           `json:"signatureValid,omitempty"`
	Metadata       PackageMetadata `json:"metadata"`
}

// TransferContract is a bilateral agreement to move one sealed file.
type TransferContract struct {
	ContractID        string         `json:"contractId"`
	Status            ContractStatus `json:"status"`
	SenderID          string         `json:"senderId"`
	SenderIDHash      string         `json:"senderIdHash"`
	ReceiverID        string         `json:"receiverId"`
	ReceiverIDHash    string         `json:"receiverIdHash"`
	FileName          string         `json:"fileName"`
	FileType          string         `json:"fileType"`
	OriginalHash      string         `json:"originalHash"`
	PackageHash       string         `json:"packageHash"`
	OriginalSize      int64          `json:"originalSize"`
	PackageSize       int64          `json:"packageSize"`
	PackagePath       string         `json:"packagePath"`
	CreatedAt         time.Time      `json:"createdAt"`
	ExpiresAt         time.Time      `json:"expiresAt"`
	AcceptedAt        *time.Time     `json:"acceptedAt,omitempty"`
	RejectedAt        *time.Time     `json:"rejectedAt,omitempty"`
	CompletedAt       *time.Time     `json:"completedAt,omitempty"`
	RejectReason      string         `json:"rejectReason,omitempty"`
	FailReason        string         `json:"failReason,omitempty"`
	SenderPublicKey   string         `json:"senderPublicKey,omitempty"`
	SenderSignature   string         `json:"senderSignature,omitempty"`
	ReceiverSignature string         `json:"receiverSignature,omitempty"`
}

// IsExpired reports whether the acceptance window closed before now.
func (c *TransferContract) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// OfferData is what the sender signs.
type OfferData struct {
	SenderIDHash   string    `json:"senderIdHash"`
	ReceiverIDHash string    `json:"receiverIdHash"`
	OriginalHash   string    `json:"originalHash"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AcceptData is what the receiver signs.
type AcceptData struct {
	ContractID     string    `json:"contractId"`
	SenderIDHash   string    `json:"senderIdHash"`
	ReceiverIDHash string    `json:"receiverIdHash"`
	AcceptedAt     time.Time `json:"acceptedAt"`
}

// HashPartyID hides a party id behind its sha256.
func HashPartyID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
