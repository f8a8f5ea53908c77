package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TransactionVersion tags every wallet transaction.
const TransactionVersion = "WALLET-1.0"

// TransactionTTL is how long a signed transaction stays admissible.
const TransactionTTL = 5 * time.Minute

// TransactionType represents the kind of balance movement.
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeMint     TransactionType = "MINT"
	TransactionTypeBurn     TransactionType = "BURN"
	TransactionTypeReward   TransactionType = "REWARD"
)

// Transaction is a wallet-signed balance movement.
// It is immutable once signed; a new nonce or timestamp requires a new Transaction.
type Transaction struct {
	Version      string          `json:"version"`
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Coin         string          `json:"coin"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Amount       float64         `json:"amount"`
	Fee          float64         `json:"fee"`
	Nonce        uint64          `json:"nonce"`
	Timestamp    int64           `json:"timestamp"` // Unix milliseconds
	Memo         string          `json:"memo"`
	Signature    string          `json:"signature,omitempty"`
	HardwareHash string          `json:"hardwareHash"`
}

// signable mirrors Transaction without the signature. Field order is part of the format.
type signable struct {
	Version      string          `json:"version"`
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Coin         string          `json:"coin"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Amount       float64         `json:"amount"`
	Fee          float64         `json:"fee"`
	Nonce        uint64          `json:"nonce"`
	Timestamp    int64           `json:"timestamp"`
	Memo         string          `json:"memo"`
	HardwareHash string          `json:"hardwareHash"`
}

// SignableData is the canonical serialization that gets signed.
func (t *Transaction) SignableData() []byte {
	b, _ := json.Marshal(signable{
		Version:      t.Version,
		ID:           t.ID,
		Type:         t.Type,
		Coin:         t.Coin,
		From:         t.From,
		To:           t.To,
		Amount:       t.Amount,
		Fee:          t.Fee,
		Nonce:        t.Nonce,
		Timestamp:    t.Timestamp,
		Memo:         t.Memo,
		HardwareHash: t.HardwareHash,
	})
	return b
}

// Hash is the sha256 of the signable data.
func (t *Transaction) Hash() string {
	sum := sha256.Sum256(t.SignableData())
	return hex.EncodeToString(sum[:])
}

// CreatedAt returns the embedded timestamp.
func (t *Transaction) CreatedAt() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// IsExpired reports whether the transaction is older than TransactionTTL at now.
func (t *Transaction) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt()) > TransactionTTL
}

// Total is what the sender must hold for the transfer.
func (t *Transaction) Total() float64 {
	return t.Amount + t.Fee
}

// TransferReceipt is returned when a transfer enters the pending pool.
type TransferReceipt struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Amount        float64 `json:"amount"`
	Coin          string  `json:"coin"`
	Fee           float64 `json:"fee"`
	Tithe         float64 `json:"tithe,omitempty"`
	Hash          string  `json:"hash"`
	BlockIndex    *int64  `json:"blockIndex,omitempty"`
}
