package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "-----BEGIN PUBLIC KEY-----\nMIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAtest\n-----END PUBLIC KEY-----\n"

func TestDeriveAddress_IsValid(t *testing.T) {
	addr := DeriveAddress(testPublicKey)

	assert.True(t, strings.HasPrefix(addr, AddressPrefix))
	assert.Len(t, addr, len(AddressPrefix)+8*4+7)
	assert.True(t, IsValidAddress(addr))
	assert.Equal(t, addr, DeriveAddress(testPublicKey), "derivation must be deterministic")
	assert.NotEqual(t, addr, DeriveAddress(testPublicKey+"x"))
}

func TestDeriveAddress_MapsHexDigits(t *testing.T) {
	// sha256 prefix 83747d5a305c844c4c4fd9ff8e28a98e, one alphabet character per hex digit.
	assert.Equal(t, "RB_A596-9F7C-527E-A66E-6E6H-FBHH-AG4A-CBAG", DeriveAddress(testPublicKey))
	assert.NotContains(t, strings.TrimPrefix(DeriveAddress(testPublicKey+"y"), AddressPrefix), "J")
}

func TestIsValidAddress(t *testing.T) {
	valid := DeriveAddress(testPublicKey)

	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"derived", valid, true},
		{"system burn", SystemAddressBurn, true},
		{"system education", SystemAddressEducation, true},
		{"literal zero", valid[:len(valid)-1] + "0", false},
		{"letter O", valid[:len(valid)-1] + "O", false},
		{"lowercase l", valid[:len(valid)-1] + "l", false},
		{"missing prefix", strings.TrimPrefix(valid, AddressPrefix), false},
		{"short group", valid[:len(valid)-1], false},
		{"too few groups", valid[:len(valid)-5], false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.addr))
		})
	}
}

func TestIsSystemAddress(t *testing.T) {
	assert.True(t, IsSystemAddress(SystemAddressMint))
	assert.True(t, IsSystemAddress(FeeSinkAddress))
	assert.False(t, IsSystemAddress(DeriveAddress(testPublicKey)))
}

func TestCoin_Fee(t *testing.T) {
	tests := []struct {
		name   string
		coin   string
		amount float64
		want   float64
	}{
		{"play money is free", CoinRGD, 50, 0},
		{"hellcoin is free", CoinHELL, 1_000_000, 0},
		{"real value percentage", CoinRC, 100, 0.1},
		{"real value minimum", CoinRC, 0.5, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := LookupCoin(tt.coin)
			require.True(t, ok)
			assert.InDelta(t, tt.want, c.Fee(tt.amount), 1e-12)
		})
	}
}

func TestCoin_Tithe(t *testing.T) {
	assert.InDelta(t, 10.0, Coins[CoinRC].Tithe(100), 1e-9)
	assert.Zero(t, Coins[CoinRGD].Tithe(100))

	_, ok := LookupCoin("DOGE")
	assert.False(t, ok)
}

func TestStartingBalances(t *testing.T) {
	b := StartingBalances()
	assert.Equal(t, 1000.0, b[CoinRGD])
	assert.Zero(t, b[CoinRC])
	assert.Len(t, b, len(CoinSymbols))
}

func TestRateLimitWindow_Boundary(t *testing.T) {
	p := DefaultRateLimitPolicy()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w := NewRateLimitWindow(now)

	code, msg := w.Check(20, p)
	assert.Empty(t, code)
	assert.Empty(t, msg)

	code, msg = w.Check(20.01, p)
	assert.Equal(t, RejectDailyLimit, code)
	assert.Contains(t, msg, "Daily limit exceeded")

	w.Record(20)
	code, _ = w.Check(0.01, p)
	assert.Equal(t, RejectDailyLimit, code)

	w.Roll(now.Add(p.Window+time.Millisecond), p)
	assert.Zero(t, w.DailyTotal)
	code, _ = w.Check(20, p)
	assert.Empty(t, code)
}

func TestRateLimitWindow_DenialMessage(t *testing.T) {
	p := DefaultRateLimitPolicy()
	w := NewRateLimitWindow(time.Now())
	w.Record(18.5)

	_, msg := w.Check(2, p)
	assert.Equal(t, "Daily limit exceeded: 18.50/20 EUR used", msg)
}

func TestRateLimitWindow_MinuteCap(t *testing.T) {
	p := DefaultRateLimitPolicy()
	p.DailyCap = 1000
	now := time.Now()
	w := NewRateLimitWindow(now)

	for i := 0; i < p.MaxTxPerMinute; i++ {
		code, _ := w.Check(1, p)
		require.Empty(t, code)
		w.Record(1)
	}

	code, msg := w.Check(1, p)
	assert.Equal(t, RejectMinuteLimit, code)
	assert.Equal(t, "Too many transactions: max 10 per minute", msg)

	w.Roll(now.Add(61*time.Second), p)
	code, _ = w.Check(1, p)
	assert.Empty(t, code)
	assert.Equal(t, 10.0, w.DailyTotal, "daily window must survive a minute roll")
}

func TestRateLimitWindow_Status(t *testing.T) {
	p := DefaultRateLimitPolicy()
	now := time.Now()
	w := NewRateLimitWindow(now)
	w.Record(5)

	s := w.Status(now, p)
	assert.Equal(t, 5.0, s.DailyUsed)
	assert.Equal(t, 15.0, s.DailyRemaining)
	assert.Equal(t, "EUR", s.Currency)

	later := w.Status(now.Add(25*time.Hour), p)
	assert.Zero(t, later.DailyUsed)
	assert.Equal(t, 5.0, w.DailyTotal, "status must not mutate the window")
}

func TestBalanceTracker_Conservation(t *testing.T) {
	bt := NewBalanceTracker(FeeSinkAddress)
	bt.SetBalance("A", CoinRGD, 1000)

	bt.ApplyTransfer("A", "B", CoinRGD, 100, 0)

	assert.Equal(t, 900.0, bt.Balance("A", CoinRGD))
	assert.Equal(t, 100.0, bt.Balance("B", CoinRGD))
	assert.Equal(t, 1000.0, bt.Supply(CoinRGD))
}

func TestBalanceTracker_FeeGoesToSink(t *testing.T) {
	bt := NewBalanceTracker(FeeSinkAddress)
	bt.ApplyMint("A", CoinRC, 10)

	require.True(t, bt.CanTransfer("A", CoinRC, 5, 0.005))
	bt.ApplyTransfer("A", "B", CoinRC, 5, 0.005)

	assert.InDelta(t, 4.995, bt.Balance("A", CoinRC), 1e-9)
	assert.InDelta(t, 0.005, bt.Balance(FeeSinkAddress, CoinRC), 1e-9)
	assert.InDelta(t, 10.0, bt.Supply(CoinRC), 1e-9)
	assert.False(t, bt.CanTransfer("A", CoinRC, 5, 0.005))
}

func TestBalanceTracker_MintBurn(t *testing.T) {
	bt := NewBalanceTracker("")
	assert.False(t, bt.ApplyBurn("ghost", CoinRGD, 1))

	bt.ApplyMint("A", CoinRGD, 50)
	assert.True(t, bt.ApplyBurn("A", CoinRGD, 20))
	assert.Equal(t, 30.0, bt.Balance("A", CoinRGD))
	assert.Equal(t, 1, bt.Addresses())
}

func TestBalanceTracker_ExportImport(t *testing.T) {
	bt := NewBalanceTracker(FeeSinkAddress)
	bt.ApplyMint("A", CoinRGD, 1000)
	bt.SetNonce("A", 7)

	snap := bt.Export()
	bt.ApplyMint("A", CoinRGD, 1)
	assert.Equal(t, 1000.0, snap.Balances["A"][CoinRGD], "export must be a copy")

	other := NewBalanceTracker(FeeSinkAddress)
	other.Import(snap)
	assert.Equal(t, 1000.0, other.Balance("A", CoinRGD))
	assert.Equal(t, uint64(7), other.Nonce("A"))

	other.Reset()
	assert.Zero(t, other.Addresses())
	assert.Zero(t, other.Nonce("A"))
}

func TestNonceHistory(t *testing.T) {
	var h NonceHistory
	assert.Equal(t, uint64(1), h.Next())

	h.Record(h.Next())
	h.Record(h.Next())

	assert.Equal(t, uint64(2), h.Current)
	assert.True(t, h.IsUsed(1))
	assert.True(t, h.IsUsed(2))
	assert.False(t, h.IsUsed(3))
	assert.True(t, h.IsUsed(0))
}

func TestNonceHistory_Trim(t *testing.T) {
	var h NonceHistory
	for i := 0; i < MaxNonceHistory+5; i++ {
		h.Record(h.Next())
	}

	assert.Len(t, h.Used, MaxNonceHistory)
	assert.Equal(t, uint64(6), h.Used[0])
	assert.True(t, h.IsUsed(1), "evicted nonces stay used")
	assert.False(t, h.IsUsed(h.Next()))
}

func newTestTransaction(ts time.Time) *Transaction {
	return &Transaction{
		Version:      TransactionVersion,
		ID:           "tx_1",
		Type:         TransactionTypeTransfer,
		Coin:         CoinRGD,
		From:         SystemAddressMint,
		To:           SystemAddressRewards,
		Amount:       50,
		Nonce:        1,
		Timestamp:    ts.UnixMilli(),
		HardwareHash: "abcd",
	}
}

func TestTransaction_SignableData(t *testing.T) {
	tx := newTestTransaction(time.Now())
	before := tx.SignableData()
	hash := tx.Hash()

	tx.Signature = "c2lnbmF0dXJl"

	assert.Equal(t, before, tx.SignableData(), "signature must not be part of the signed bytes")
	assert.Equal(t, hash, tx.Hash())
	assert.NotContains(t, string(tx.SignableData()), "signature")

	tx.Amount = 51
	assert.NotEqual(t, hash, tx.Hash())
}

func TestTransaction_IsExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, newTestTransaction(now.Add(-4*time.Minute)).IsExpired(now))
	assert.True(t, newTestTransaction(now.Add(-6*time.Minute)).IsExpired(now))
}

func TestValidationResult(t *testing.T) {
	r := ValidationResult{Valid: true}
	r.Reject(RejectInvalidNonce, "Invalid nonce: 1 <= 1 (replay attack?)")
	r.Reject(RejectExpired, "Transaction expired (older than 5 minutes)")

	assert.False(t, r.Valid)
	assert.True(t, r.Has(RejectExpired))
	assert.False(t, r.Has(RejectDoubleSpend))
	assert.Equal(t, []RejectionCode{RejectInvalidNonce, RejectExpired}, r.Codes())
	assert.Equal(t, "Invalid nonce: 1 <= 1 (replay attack?); Transaction expired (older than 5 minutes)", r.Reason())
}

func TestMerkleRoot(t *testing.T) {
	mk := func(id string) LedgerTransaction {
		tx := LedgerTransaction{TxID: id, Type: LedgerTxTokenTransfer, Timestamp: 1}
		tx.Hash = tx.ComputeHash()
		return tx
	}
	a, b, c := mk("a"), mk("b"), mk("c")

	assert.Equal(t, a.Hash, MerkleRoot([]LedgerTransaction{a}))
	assert.Equal(t, sha256Hex([]byte(a.Hash+b.Hash)), MerkleRoot([]LedgerTransaction{a, b}))

	ab := sha256Hex([]byte(a.Hash + b.Hash))
	cc := sha256Hex([]byte(c.Hash + c.Hash))
	assert.Equal(t, sha256Hex([]byte(ab+cc)), MerkleRoot([]LedgerTransaction{a, b, c}))
	assert.NotEmpty(t, MerkleRoot(nil))
}

func TestBlock_Mine(t *testing.T) {
	b := &Block{Index: 1, PreviousHash: "00ab", Timestamp: 1700000000000, MerkleRoot: "root"}

	hash := b.Mine(2)

	assert.True(t, strings.HasPrefix(hash, "00"))
	assert.Equal(t, hash, b.CalculateHash())
}

func TestLedgerTransaction_Involves(t *testing.T) {
	tx := LedgerTransaction{Data: LedgerTxData{From: "A", To: "B"}}
	tithe := LedgerTransaction{Data: LedgerTxData{From: "A", Recipient: "E"}}

	assert.True(t, tx.Involves("A"))
	assert.True(t, tx.Involves("B"))
	assert.False(t, tx.Involves("C"))
	assert.True(t, tithe.Involves("E"))
}

func TestIdentity_Touch(t *testing.T) {
	id := &Identity{}
	now := time.Now()
	id.Touch(now)
	id.Touch(now)

	assert.Equal(t, 2, id.Stats.SessionsCount)
	assert.Equal(t, now, id.LastSeen)
	assert.Equal(t, "hw", id.Summary("hw").HardwareHash)
}

func TestUsernames(t *testing.T) {
	assert.Equal(t, "braveranger7", SanitizeUsername("Brave Ranger_7!"))
	assert.Equal(t, "BraveRanger42", GenerateUsername(0, 0, 42))
	assert.Equal(t, "SwiftGuardian1", GenerateUsername(-1, 1, 1001))
}

func TestTransferContract_IsExpired(t *testing.T) {
	now := time.Now()
	c := &TransferContract{CreatedAt: now, ExpiresAt: now.Add(ContractTTL)}

	assert.False(t, c.IsExpired(now.Add(time.Hour)))
	assert.True(t, c.IsExpired(now.Add(25*time.Hour)))
	assert.Len(t, HashPartyID("alice"), 64)
}

func TestVMDetectionPolicy_Weight(t *testing.T) {
	p := DefaultVMDetectionPolicy()
	p.Weights[VMCheckMACPrefix] = 3

	assert.Equal(t, 3.0, p.Weight(VMCheckMACPrefix))
	assert.Equal(t, 1.0, p.Weight(VMCheckGuestTools))
	assert.Equal(t, 1.0, VMDetectionPolicy{}.Weight(VMCheckFirmware))
}
