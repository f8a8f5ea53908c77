package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rangerblock/internal/adapter/storage/file"
	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports/mocks"
	"rangerblock/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testRecipient = "RB_ABCD-EFGH-JKMN-PQRS-TUVW-XYZ2-3456-789A"

func newTestWallet(t *testing.T, dir string) (*Wallet, *SecureIdentityStore) {
	t.Helper()
	store := newTestIdentityStore(t, dir, newPhysicalProbe())
	w := NewWallet(
		store,
		newTestCryptoEngine(),
		file.NewNonceRepository(dir),
		file.NewRateLimitRepository(dir),
		WalletConfig{Username: "ranger", RateLimit: domain.DefaultRateLimitPolicy()},
		newTestLogger(),
	)
	require.NoError(t, w.Init(context.Background()))
	return w, store
}

func TestWallet_Init(t *testing.T) {
	dir := t.TempDir()
	w, store := newTestWallet(t, dir)

	pub, err := store.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, domain.DeriveAddress(pub), w.Address())
	assert.True(t, domain.IsValidAddress(w.Address()))

	assert.Equal(t, 1000.0, w.Balance(domain.CoinRGD))
	assert.Zero(t, w.Balance(domain.CoinRC))
	assert.Zero(t, w.Balance(domain.CoinHELL))
	assert.FileExists(t, filepath.Join(dir, WalletFile))

	require.NoError(t, w.UpdateBalance(domain.CoinHELL, 42))

	reopened, _ := newTestWallet(t, dir)
	assert.Equal(t, w.Address(), reopened.Address())
	assert.Equal(t, 42.0, reopened.Balance(domain.CoinHELL))
}

func TestWallet_Init_IdentityUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mocks.NewMockIdentityStore(ctrl)
	identity.EXPECT().GetOrCreateIdentity(gomock.Any(), "ranger").Return(nil, apperror.ErrIdentityUnavailable())

	w := NewWallet(identity, newTestCryptoEngine(), nil, nil,
		WalletConfig{Username: "ranger", RateLimit: domain.DefaultRateLimitPolicy()}, newTestLogger())

	err := w.Init(context.Background())
	requireAppCode(t, err, "ID_002")
	assert.Empty(t, w.Address())
}

func TestWallet_CreateTransfer_PlayMoney(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w, store := newTestWallet(t, dir)

	tx, err := w.CreateTransfer(ctx, testRecipient, 50, domain.CoinRGD, "lunch")
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionVersion, tx.Version)
	assert.Equal(t, domain.TransactionTypeTransfer, tx.Type)
	assert.Len(t, tx.ID, 32)
	assert.Equal(t, w.Address(), tx.From)
	assert.Equal(t, testRecipient, tx.To)
	assert.Zero(t, tx.Fee)
	assert.Equal(t, uint64(1), tx.Nonce)
	assert.NotEmpty(t, tx.Signature)
	assert.Equal(t, store.HardwareHash(), tx.HardwareHash)

	pub, _ := w.PublicKey()
	assert.True(t, w.VerifyTransaction(tx, pub).Valid)

	tx2, err := w.CreateTransfer(ctx, testRecipient, 1, domain.CoinRGD, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tx2.Nonce)

	// cache is not debited until the ledger confirms
	assert.Equal(t, 1000.0, w.Balance(domain.CoinRGD))
	assert.Equal(t, 2, w.Stats().TxCount)
	assert.Equal(t, 51.0, w.Stats().TotalSent)

	raw, err := os.ReadFile(filepath.Join(dir, file.NonceFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), w.Address())
	_, err = os.Stat(filepath.Join(dir, file.RateLimitFile))
	assert.True(t, os.IsNotExist(err), "play money is not rate limited")
}

func TestWallet_CreateTransfer_Rejections(t *testing.T) {
	w, _ := newTestWallet(t, t.TempDir())

	tests := []struct {
		name   string
		to     string
		amount float64
		coin   string
		code   string
	}{
		{"invalid address", "RB_0000-0000-0000-0000-0000-0000-0000-0000", 1, domain.CoinRGD, "WAL_001"},
		{"zero amount", testRecipient, 0, domain.CoinRGD, "WAL_002"},
		{"negative amount", testRecipient, -5, domain.CoinRGD, "WAL_002"},
		{"unknown coin", testRecipient, 1, "DOGE", "WAL_003"},
		{"over balance", testRecipient, 1000.5, domain.CoinRGD, "WAL_004"},
		{"no real balance", testRecipient, 1, domain.CoinRC, "WAL_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.CreateTransfer(context.Background(), tt.to, tt.amount, tt.coin, "")
			requireAppCode(t, err, tt.code)
		})
	}
}

func TestWallet_CreateTransfer_FeeCountsTowardBalance(t *testing.T) {
	w, _ := newTestWallet(t, t.TempDir())
	require.NoError(t, w.UpdateBalance(domain.CoinRC, 5))

	_, err := w.CreateTransfer(context.Background(), testRecipient, 5, domain.CoinRC, "")
	requireAppCode(t, err, "WAL_004")

	tx, err := w.CreateTransfer(context.Background(), testRecipient, 4, domain.CoinRC, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.004, tx.Fee, 1e-12)
}

func TestWallet_DailyLimit(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWallet(t, t.TempDir())
	require.NoError(t, w.UpdateBalance(domain.CoinRC, 100))

	start := time.Now()
	w.now = func() time.Time { return start }

	_, err := w.CreateTransfer(ctx, testRecipient, 20.01, domain.CoinRC, "")
	requireAppCode(t, err, "RATE_001")
	assert.Equal(t, "Daily limit exceeded: 0.00/20 EUR used", err.(*apperror.AppError).Message)

	_, err = w.CreateTransfer(ctx, testRecipient, 20, domain.CoinRC, "")
	require.NoError(t, err)

	_, err = w.CreateTransfer(ctx, testRecipient, 0.01, domain.CoinRC, "")
	requireAppCode(t, err, "RATE_001")
	assert.Equal(t, "Daily limit exceeded: 20.00/20 EUR used", err.(*apperror.AppError).Message)

	status, err := w.RateLimitStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, status.DailyUsed)
	assert.Zero(t, status.DailyRemaining)
	assert.Equal(t, "EUR", status.Currency)

	w.now = func() time.Time { return start.Add(24*time.Hour + time.Second) }
	_, err = w.CreateTransfer(ctx, testRecipient, 10, domain.CoinRC, "")
	require.NoError(t, err)

	status, err = w.RateLimitStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, status.DailyUsed)
}

func TestWallet_MinuteLimit(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWallet(t, t.TempDir())
	require.NoError(t, w.UpdateBalance(domain.CoinRC, 100))

	start := time.Now()
	w.now = func() time.Time { return start }

	for i := 0; i < 10; i++ {
		_, err := w.CreateTransfer(ctx, testRecipient, 1, domain.CoinRC, "")
		require.NoError(t, err, "transfer %d", i+1)
	}
	_, err := w.CreateTransfer(ctx, testRecipient, 1, domain.CoinRC, "")
	requireAppCode(t, err, "RATE_002")
	assert.Equal(t, "Too many transactions: max 10 per minute", err.(*apperror.AppError).Message)

	w.now = func() time.Time { return start.Add(61 * time.Second) }
	_, err = w.CreateTransfer(ctx, testRecipient, 1, domain.CoinRC, "")
	require.NoError(t, err)
}

func TestWallet_VerifyTransaction(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWallet(t, t.TempDir())
	pub, err := w.PublicKey()
	require.NoError(t, err)

	tx, err := w.CreateTransfer(ctx, testRecipient, 10, domain.CoinRGD, "")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		res := w.VerifyTransaction(tx, pub)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("tampered amount", func(t *testing.T) {
		forged := *tx
		forged.Amount = 999
		res := w.VerifyTransaction(&forged, pub)
		assert.False(t, res.Valid)
		assert.Equal(t, []domain.RejectionCode{domain.RejectInvalidSignature}, res.Codes())
	})

	t.Run("wrong key", func(t *testing.T) {
		assert.False(t, w.VerifyTransaction(tx, otherKeyPair(t).PublicKey).Valid)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned := *tx
		unsigned.Signature = ""
		res := w.VerifyTransaction(&unsigned, pub)
		assert.Equal(t, "No signature", res.Reason())
	})

	t.Run("expired", func(t *testing.T) {
		saved := w.now
		defer func() { w.now = saved }()
		w.now = func() time.Time { return tx.CreatedAt().Add(domain.TransactionTTL + time.Millisecond) }

		res := w.VerifyTransaction(tx, pub)
		assert.False(t, res.Valid)
		assert.True(t, res.Has(domain.RejectExpired))
		assert.False(t, res.Has(domain.RejectInvalidSignature))
	})
}

func TestWallet_DoubleSpend(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWallet(t, t.TempDir())

	tx, err := w.CreateTransfer(ctx, testRecipient, 10, domain.CoinRGD, "")
	require.NoError(t, err)

	used, err := w.IsNonceUsed(ctx, w.Address(), tx.Nonce)
	require.NoError(t, err)
	assert.True(t, used)
	used, err = w.IsNonceUsed(ctx, w.Address(), tx.Nonce+1)
	require.NoError(t, err)
	assert.False(t, used)

	ds, err := w.IsDoubleSpend(ctx, tx)
	require.NoError(t, err)
	assert.True(t, ds, "replayed nonce")

	// same id relayed under another sender: caught by the pending set
	relayed := *tx
	relayed.From = testRecipient
	ds, err = w.IsDoubleSpend(ctx, &relayed)
	require.NoError(t, err)
	assert.True(t, ds)

	w.MarkConfirmed(tx.ID)
	ds, err = w.IsDoubleSpend(ctx, &relayed)
	require.NoError(t, err)
	assert.False(t, ds)
}

func TestWallet_NonceStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	store := newTestIdentityStore(t, dir, newPhysicalProbe())
	nonces := mocks.NewMockNonceRepository(ctrl)

	w := NewWallet(store, newTestCryptoEngine(), nonces, file.NewRateLimitRepository(dir),
		WalletConfig{RateLimit: domain.DefaultRateLimitPolicy()}, newTestLogger())
	require.NoError(t, w.Init(context.Background()))

	nonces.EXPECT().Load(gomock.Any(), w.Address()).Return(nil, errors.New("disk gone"))

	_, err := w.CreateTransfer(context.Background(), testRecipient, 1, domain.CoinRGD, "")
	requireAppCode(t, err, "SYS_002")
}

func TestWallet_AdvanceNonce(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWallet(t, t.TempDir())

	require.NoError(t, w.AdvanceNonce(ctx, 7))
	tx, err := w.CreateTransfer(ctx, testRecipient, 1, domain.CoinRGD, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), tx.Nonce)

	// A lower floor never moves the counter back.
	require.NoError(t, w.AdvanceNonce(ctx, 3))
	tx, err = w.CreateTransfer(ctx, testRecipient, 1, domain.CoinRGD, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), tx.Nonce)
}

func TestWallet_Balances(t *testing.T) {
	w, _ := newTestWallet(t, t.TempDir())

	requireAppCode(t, w.UpdateBalance("DOGE", 1), "WAL_003")

	require.NoError(t, w.SyncBalances(map[string]float64{domain.CoinRGD: 900, domain.CoinRC: 3.5, "DOGE": 7}))
	b := w.Balances()
	assert.Equal(t, 900.0, b[domain.CoinRGD])
	assert.Equal(t, 3.5, b[domain.CoinRC])
	assert.Zero(t, b[domain.CoinHELL])
	assert.NotContains(t, b, "DOGE")

	b[domain.CoinRGD] = 1
	assert.Equal(t, 900.0, w.Balance(domain.CoinRGD), "Balances returns a copy")
}

func TestWallet_Summary(t *testing.T) {
	w, store := newTestWallet(t, t.TempDir())

	s, err := w.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, w.Address(), s.Address)
	assert.Equal(t, 1000.0, s.Balances[domain.CoinRGD])
	assert.Equal(t, 20.0, s.RateLimits.DailyRemaining)
	require.NotNil(t, s.Identity)
	assert.Equal(t, store.HardwareHash(), s.Identity.HardwareHash)
	assert.False(t, s.IsVM)
}

func TestWallet_CoinTable(t *testing.T) {
	w := NewWallet(nil, nil, nil, nil, WalletConfig{}, newTestLogger())

	coins := w.SupportedCoins()
	require.Len(t, coins, 3)
	assert.Equal(t, domain.CoinRC, coins[0].Symbol)

	rc, err := w.CoinInfo(domain.CoinRC)
	require.NoError(t, err)
	assert.True(t, rc.RealValue)
	_, err = w.CoinInfo("DOGE")
	requireAppCode(t, err, "WAL_003")

	assert.InDelta(t, 10.0, w.EducationTithe(100, domain.CoinRC), 1e-9)
	assert.Zero(t, w.EducationTithe(100, domain.CoinRGD))
}

func TestWallet_NotInitialized(t *testing.T) {
	w := NewWallet(nil, nil, nil, nil, WalletConfig{}, newTestLogger())

	_, err := w.CreateTransfer(context.Background(), testRecipient, 1, domain.CoinRGD, "")
	requireAppCode(t, err, "ID_001")
	_, err = w.RateLimitStatus(context.Background())
	requireAppCode(t, err, "ID_001")
	requireAppCode(t, w.AdvanceNonce(context.Background(), 1), "ID_001")
	assert.Zero(t, w.Balance(domain.CoinRGD))
	assert.Empty(t, w.Balances())
}
