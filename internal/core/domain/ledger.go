package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// LedgerTxType is the record type understood by the ledger.
type LedgerTxType string

const (
	LedgerTxTokenTransfer  LedgerTxType = "token_transfer"
	LedgerTxTokenMint      LedgerTxType = "token_mint"
	LedgerTxTokenBurn      LedgerTxType = "token_burn"
	LedgerTxReward         LedgerTxType = "reward"
	LedgerTxEducationTithe LedgerTxType = "education_tithe"
	LedgerTxGenesis        LedgerTxType = "genesis"
)

// GenesisTimestamp is the fixed timestamp of block 0 (2023-12-04 UTC).
const GenesisTimestamp int64 = 1701648000000

// LedgerTxData carries the typed payload of a ledger record.
type LedgerTxData struct {
	From         string  `json:"from,omitempty"`
	To           string  `json:"to,omitempty"`
	Recipient    string  `json:"recipient,omitempty"`
	Coin         string  `json:"coin,omitempty"`
	Amount       float64 `json:"amount"`
	Fee          float64 `json:"fee,omitempty"`
	Nonce        uint64  `json:"nonce,omitempty"`
	Memo         string  `json:"memo,omitempty"`
	Signature    string  `json:"signature,omitempty"`
	HardwareHash string  `json:"hardwareHash,omitempty"`
	WalletTxID   string  `json:"walletTxId,omitempty"`
	Purpose      string  `json:"purpose,omitempty"`
}

// LedgerTransaction is one record in the pending pool or a block.
// TxID is the ledger's own id; Data.WalletTxID links back to the wallet transaction.
type LedgerTransaction struct {
	TxID      string       `json:"txId"`
	Type      LedgerTxType `json:"type"`
	Sender    string       `json:"sender"`
	Timestamp int64        `json:"timestamp"`
	Data      LedgerTxData `json:"data"`
	Hash      string       `json:"hash"`
}

// Involves reports whether addr sends or receives in this record.
func (t *LedgerTransaction) Involves(addr string) bool {
	return t.Data.From == addr || t.Data.To == addr || t.Data.Recipient == addr
}

type ledgerTxHashInput struct {
	TxID      string       `json:"txId"`
	Type      LedgerTxType `json:"type"`
	Sender    string       `json:"sender"`
	Timestamp int64        `json:"timestamp"`
	Data      LedgerTxData `json:"data"`
}

// ComputeHash hashes every field except Hash itself.
func (t *LedgerTransaction) ComputeHash() string {
	b, _ := json.Marshal(ledgerTxHashInput{
		TxID:      t.TxID,
		Type:      t.Type,
		Sender:    t.Sender,
		Timestamp: t.Timestamp,
		Data:      t.Data,
	})
	return sha256Hex(b)
}

// Validator identifies who mined a block.
type Validator struct {
	NodeID    string `json:"nodeId"`
	Timestamp int64  `json:"timestamp"`
}

// Block is an ordered batch of ledger records.
type Block struct {
	Index            int64               `json:"index"`
	Hash             string              `json:"hash"`
	PreviousHash     string              `json:"previousHash"`
	Timestamp        int64               `json:"timestamp"`
	MerkleRoot       string              `json:"merkleRoot"`
	Nonce            uint64              `json:"nonce"`
	TransactionCount int                 `json:"transactionCount"`
	Transactions     []LedgerTransaction `json:"transactions"`
	Validator        *Validator          `json:"validator,omitempty"`
}

type blockHashInput struct {
	Index        int64  `json:"index"`
	PreviousHash string `json:"previousHash"`
	Timestamp    int64  `json:"timestamp"`
	MerkleRoot   string `json:"merkleRoot"`
	Nonce        uint64 `json:"nonce"`
}

// CalculateHash hashes the header fields.
func (b *Block) CalculateHash() string {
	raw, _ := json.Marshal(blockHashInput{
		Index:        b.Index,
		PreviousHash: b.PreviousHash,
		Timestamp:    b.Timestamp,
		MerkleRoot:   b.MerkleRoot,
		Nonce:        b.Nonce,
	})
	return sha256Hex(raw)
}

// Mine searches for a nonce whose hash has difficulty leading zeros.
func (b *Block) Mine(difficulty int) string {
	target := strings.Repeat("0", difficulty)
	b.Hash = b.CalculateHash()
	for !strings.HasPrefix(b.Hash, target) {
		b.Nonce++
		b.Hash = b.CalculateHash()
	}
	return b.Hash
}

// MerkleRoot folds transaction hashes pairwise; an odd tail is paired with itself.
func MerkleRoot(txs []LedgerTransaction) string {
	if len(txs) == 0 {
		return sha256Hex(nil)
	}
	level := make([]string, len(txs))
	for i := range txs {
		h := txs[i].Hash
		if h == "" {
			h = txs[i].ComputeHash()
		}
		level[i] = h
	}
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, sha256Hex([]byte(level[i]+right)))
		}
		level = next
	}
	return level[0]
}

// LedgerStatus is the ledger's summary view.
type LedgerStatus struct {
	ChainHeight         int64  `json:"chainHeight"`
	LastBlockHash       string `json:"lastBlockHash"`
	PendingTransactions int    `json:"pendingTransactions"`
	TotalTransactions   int    `json:"totalTransactions"`
	LastBlockTime       *int64 `json:"lastBlockTime,omitempty"`
}

// HistoryEntry is a ledger record seen from one address.
type HistoryEntry struct {
	LedgerTransaction
	BlockIndex *int64 `json:"blockIndex,omitempty"`
	BlockHash  string `json:"blockHash,omitempty"`
	Confirmed  bool   `json:"confirmed"`
	Direction  string `json:"direction"`
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
