package domain

import (
	"sort"
	"time"
)

// WalletVersion tags the persisted wallet cache.
const WalletVersion = "WALLET-1.0"

// MaxNonceHistory bounds the used-nonce list kept per address.
const MaxNonceHistory = 1000

// WalletStats holds wallet lifecycle counters.
type WalletStats struct {
	TotalSent     float64 `json:"totalSent"`
	TotalReceived float64 `json:"totalReceived"`
	TxCount       int     `json:"txCount"`
}

// WalletState is the encrypted local balance mirror.
// Balances are a cache only; the ledger replay is authoritative.
type WalletState struct {
	Version  string             `json:"version"`
	Address  string             `json:"address"`
	Created  time.Time          `json:"created"`
	Balances map[string]float64 `json:"balances"`
	Stats    WalletStats        `json:"stats"`
}

// NonceHistory tracks the nonce counter of one address.
type NonceHistory struct {
	Current uint64   `json:"current"`
	Used    []uint64 `json:"used"`
}

// Next allocates the next nonce without recording it.
func (h *NonceHistory) Next() uint64 {
	return h.Current + 1
}

// Record marks nonce as used and trims the history to MaxNonceHistory entries.
func (h *NonceHistory) Record(nonce uint64) {
	if nonce > h.Current {
		h.Current = nonce
	}
	h.Used = append(h.Used, nonce)
	if len(h.Used) > MaxNonceHistory {
		h.Used = h.Used[len(h.Used)-MaxNonceHistory:]
	}
}

// IsUsed reports whether nonce was recorded. Nonces at or below the oldest
// remembered entry count as used, since the counter only moves forward.
func (h *NonceHistory) IsUsed(nonce uint64) bool {
	if nonce == 0 {
		return true
	}
	for _, n := range h.Used {
		if n == nonce {
			return true
		}
	}
	return len(h.Used) > 0 && nonce < h.Used[0]
}

// WalletSummary is a public snapshot of the wallet.
type WalletSummary struct {
	Address      string             `json:"address"`
	Balances     map[string]float64 `json:"balances"`
	RateLimits   RateLimitStatus    `json:"rateLimits"`
	Identity     *IdentitySummary   `json:"identity,omitempty"`
	IsVM         bool               `json:"isVM"`
	HardwareHash string             `json:"hardwareHash"`
}

// SortedCoins returns the balance keys in a stable order.
func SortedCoins(balances map[string]float64) []string {
	keys := make([]string, 0, len(balances))
	for k := range balances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
