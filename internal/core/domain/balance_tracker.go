package domain

// BalanceTracker is the in-memory account-model state rebuilt from the ledger.
// It has no locking; LedgerBridge owns it and serializes access.
type BalanceTracker struct {
	balances map[string]map[string]float64
	nonces   map[string]uint64
	feeSink  string
}

// BalanceSnapshot is the exportable tracker state.
type BalanceSnapshot struct {
	Balances map[string]map[string]float64 `json:"balances"`
	Nonces   map[string]uint64             `json:"nonces"`
}

// NewBalanceTracker creates an empty tracker. Transfer fees are credited to feeSink;
// an empty feeSink drops them from circulation.
func NewBalanceTracker(feeSink string) *BalanceTracker {
	return &BalanceTracker{
		balances: make(map[string]map[string]float64),
		nonces:   make(map[string]uint64),
		feeSink:  feeSink,
	}
}

func (b *BalanceTracker) account(addr string) map[string]float64 {
	acc, ok := b.balances[addr]
	if !ok {
		acc = make(map[string]float64, len(CoinSymbols))
		for _, sym := range CoinSymbols {
			acc[sym] = 0
		}
		b.balances[addr] = acc
	}
	return acc
}

// Balance returns 0 for unknown addresses.
func (b *BalanceTracker) Balance(addr, coin string) float64 {
	return b.balances[addr][coin]
}

// AllBalances returns a copy of every coin balance for addr.
func (b *BalanceTracker) AllBalances(addr string) map[string]float64 {
	out := make(map[string]float64, len(CoinSymbols))
	for _, sym := range CoinSymbols {
		out[sym] = 0
	}
	for coin, v := range b.balances[addr] {
		out[coin] = v
	}
	return out
}

// SetBalance overwrites a balance. Used for imports and tests.
func (b *BalanceTracker) SetBalance(addr, coin string, amount float64) {
	b.account(addr)[coin] = amount
}

// ApplyTransfer debits from by amount+fee and credits to by amount.
func (b *BalanceTracker) ApplyTransfer(from, to, coin string, amount, fee float64) {
	b.account(from)[coin] -= amount + fee
	b.account(to)[coin] += amount
	if fee > 0 && b.feeSink != "" {
		b.account(b.feeSink)[coin] += fee
	}
}

// ApplyMint credits newly created coins.
func (b *BalanceTracker) ApplyMint(to, coin string, amount float64) {
	b.account(to)[coin] += amount
}

// ApplyBurn destroys coins. Returns false when the address was never seen.
func (b *BalanceTracker) ApplyBurn(from, coin string, amount float64) bool {
	acc, ok := b.balances[from]
	if !ok {
		return false
	}
	acc[coin] -= amount
	return true
}

// CanTransfer reports whether from holds amount+fee.
func (b *BalanceTracker) CanTransfer(from, coin string, amount, fee float64) bool {
	return b.Balance(from, coin) >= amount+fee
}

// Nonce returns the last applied nonce, 0 if none.
func (b *BalanceTracker) Nonce(addr string) uint64 {
	return b.nonces[addr]
}

// SetNonce records the last applied nonce.
func (b *BalanceTracker) SetNonce(addr string, nonce uint64) {
	b.nonces[addr] = nonce
}

// Addresses returns how many accounts are tracked.
func (b *BalanceTracker) Addresses() int {
	return len(b.balances)
}

// Supply sums a coin over every tracked address.
func (b *BalanceTracker) Supply(coin string) float64 {
	var total float64
	for _, acc := range b.balances {
		total += acc[coin]
	}
	return total
}

// Export deep-copies the tracker state.
func (b *BalanceTracker) Export() BalanceSnapshot {
	snap := BalanceSnapshot{
		Balances: make(map[string]map[string]float64, len(b.balances)),
		Nonces:   make(map[string]uint64, len(b.nonces)),
	}
	for addr, acc := range b.balances {
		c := make(map[string]float64, len(acc))
		for coin, v := range acc {
			c[coin] = v
		}
		snap.Balances[addr] = c
	}
	for addr, n := range b.nonces {
		snap.Nonces[addr] = n
	}
	return snap
}

// Import replaces the tracker state with a snapshot.
func (b *BalanceTracker) Import(snap BalanceSnapshot) {
	b.balances = make(map[string]map[string]float64, len(snap.Balances))
	for addr, acc := range snap.Balances {
		c := make(map[string]float64, len(acc))
		for coin, v := range acc {
			c[coin] = v
		}
		b.balances[addr] = c
	}
	b.nonces = make(map[string]uint64, len(snap.Nonces))
	for addr, n := range snap.Nonces {
		b.nonces[addr] = n
	}
}

// Reset clears all state.
func (b *BalanceTracker) Reset() {
	b.Import(BalanceSnapshot{})
}
