package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rangerblock/internal/adapter/ledger"
	"rangerblock/internal/adapter/storage/file"
	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type bridgeFixture struct {
	bridge  *LedgerBridge
	wallet  *Wallet
	store   *SecureIdentityStore
	chain   ports.Ledger
	events  *EventBus
	metrics *Metrics
	dir     string
}

func testChainConfig() ledger.Config {
	return ledger.Config{Difficulty: 1, MaxTransactionsPerBlock: 10, AutoMine: true}
}

func newTestChain(dir string, cfg ledger.Config) *ledger.Chain {
	return ledger.New(file.NewLedgerRepository(filepath.Join(dir, "ledger")), cfg, newTestLogger())
}

func newBridgeFixture(t *testing.T, dir string, chain ports.Ledger, cfg BridgeConfig) *bridgeFixture {
	t.Helper()
	w, store := newTestWallet(t, dir)
	log := newTestLogger()
	events := NewEventBus(32, log)
	metrics := NewNopMetrics()
	b := NewLedgerBridge(
		w,
		chain,
		NewSecurityEventService(log, file.NewSecurityLog(dir)),
		events,
		metrics,
		cfg,
		log,
	)
	require.NoError(t, b.Init(context.Background()))
	return &bridgeFixture{bridge: b, wallet: w, store: store, chain: chain, events: events, metrics: metrics, dir: dir}
}

func newTestBridge(t *testing.T) *bridgeFixture {
	t.Helper()
	dir := t.TempDir()
	return newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), DefaultBridgeConfig())
}

// mint queues a mint to address and mines it through the bridge.
func (f *bridgeFixture) mint(t *testing.T, address, coin string, amount float64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.chain.AddPending(ctx, domain.LedgerTransaction{
		Type:      domain.LedgerTxTokenMint,
		Sender:    domain.SystemAddressMint,
		Timestamp: time.Now().UnixMilli(),
		Data:      domain.LedgerTxData{Recipient: address, Coin: coin, Amount: amount},
	}))
	_, err := f.bridge.MineBlock(ctx)
	require.NoError(t, err)
}

func (f *bridgeFixture) resign(t *testing.T, tx *domain.Transaction) {
	t.Helper()
	sig, err := f.store.SignMessage(tx.SignableData())
	require.NoError(t, err)
	tx.Signature = sig
}

func TestLedgerBridge_InitGrantsWelcomeOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), DefaultBridgeConfig())

	assert.Equal(t, 1000.0, f.bridge.Balance("", domain.CoinRGD))
	assert.Equal(t, 1000.0, f.wallet.Balance(domain.CoinRGD))

	status, err := f.bridge.LedgerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.ChainHeight)
	assert.Zero(t, status.PendingTransactions)

	history, err := f.bridge.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.LedgerTxTokenMint, history[0].Type)
	assert.Equal(t, "received", history[0].Direction)
	assert.True(t, history[0].Confirmed)

	// A restart replays the chain instead of granting again.
	again := newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), DefaultBridgeConfig())
	assert.Equal(t, f.wallet.Address(), again.wallet.Address())
	assert.Equal(t, 1000.0, again.bridge.Balance("", domain.CoinRGD))
	status, err = again.bridge.LedgerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.ChainHeight)
}

func TestLedgerBridge_WelcomeGrantDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultBridgeConfig()
	cfg.WelcomeGrant = 0
	f := newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), cfg)

	assert.Zero(t, f.bridge.Balance("", domain.CoinRGD))
	// The cache follows the ledger, not the starting balances.
	assert.Zero(t, f.wallet.Balance(domain.CoinRGD))
}

func TestLedgerBridge_EndToEndTransfer(t *testing.T) {
	ctx := context.Background()
	f := newTestBridge(t)

	identity, err := f.store.Identity()
	require.NoError(t, err)
	assert.True(t, identity.Security.HardwareAttested)
	sig, err := f.store.SignMessage([]byte("ping"))
	require.NoError(t, err)
	assert.True(t, f.store.VerifyMessage([]byte("ping"), sig, identity.PublicKey))

	receipt, err := f.bridge.SendTokens(ctx, testRecipient, 50, domain.CoinRGD, "lunch")
	require.NoError(t, err)
	assert.Equal(t, "pending", receipt.Status)
	assert.Zero(t, receipt.Fee)
	assert.Zero(t, receipt.Tithe)
	assert.Nil(t, receipt.BlockIndex)
	assert.Len(t, receipt.Hash, 64)

	pending, err := f.chain.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	rec := pending[0]
	assert.Equal(t, domain.LedgerTxTokenTransfer, rec.Type)
	assert.Equal(t, receipt.TransactionID, rec.Data.WalletTxID)
	assert.Equal(t, uint64(1), rec.Data.Nonce)
	assert.NotEmpty(t, rec.Data.Signature)
	assert.Equal(t, f.store.HardwareHash(), rec.Data.HardwareHash)

	// Pending records never move balances.
	assert.Equal(t, 1000.0, f.bridge.Balance("", domain.CoinRGD))

	block, err := f.bridge.MineBlock(ctx)
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, int64(2), block.Index)
	assert.Equal(t, f.wallet.Address(), block.Validator.NodeID)

	assert.Equal(t, 950.0, f.bridge.Balance("", domain.CoinRGD))
	assert.Equal(t, 50.0, f.bridge.Balance(testRecipient, domain.CoinRGD))
	assert.Equal(t, 950.0, f.wallet.Balance(domain.CoinRGD))

	history, err := f.bridge.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "sent", history[0].Direction)
	assert.True(t, history[0].Confirmed)
	require.NotNil(t, history[0].BlockIndex)
	assert.Equal(t, int64(2), *history[0].BlockIndex)
	assert.Equal(t, "received", history[1].Direction)

	// Nothing left to mine.
	block, err = f.bridge.MineBlock(ctx)
	require.NoError(t, err)
	assert.Nil(t, block)
}

func TestLedgerBridge_RealValueCoinTitheAndFee(t *testing.T) {
	ctx := context.Background()
	f := newTestBridge(t)
	f.mint(t, f.wallet.Address(), domain.CoinRC, 100)
	assert.Equal(t, 100.0, f.wallet.Balance(domain.CoinRC))

	receipt, err := f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRC, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.01, receipt.Fee, 1e-9)
	assert.InDelta(t, 1.0, receipt.Tithe, 1e-9)

	pending, err := f.chain.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	tithe := pending[1]
	assert.Equal(t, domain.LedgerTxEducationTithe, tithe.Type)
	assert.Equal(t, domain.SystemAddressEducation, tithe.Data.To)
	assert.Equal(t, TithePurpose, tithe.Data.Purpose)
	assert.InDelta(t, 1.0, tithe.Data.Amount, 1e-9)

	_, err = f.bridge.MineBlock(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 88.99, f.bridge.Balance("", domain.CoinRC), 1e-9)
	assert.InDelta(t, 10.0, f.bridge.Balance(testRecipient, domain.CoinRC), 1e-9)
	assert.InDelta(t, 1.0, f.bridge.Balance(domain.SystemAddressEducation, domain.CoinRC), 1e-9)
	assert.InDelta(t, 0.01, f.bridge.Balance(domain.FeeSinkAddress, domain.CoinRC), 1e-9)
	assert.InDelta(t, 100.0, f.bridge.Supply(domain.CoinRC), 1e-9)
	assert.InDelta(t, 88.99, f.wallet.Balance(domain.CoinRC), 1e-9)
}

func TestLedgerBridge_SendRequiresTithe(t *testing.T) {
	ctx := context.Background()
	f := newTestBridge(t)
	f.mint(t, f.wallet.Address(), domain.CoinRC, 10.5)

	// 10 + 0.01 fee is affordable, 10 + 0.01 + 1 tithe is not.
	_, err := f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRC, "")
	requireAppCode(t, err, "WAL_004")
	assert.Contains(t, err.Error(), "Insufficient balance: have 10.5, need 11.0")

	history, err := file.NewNonceRepository(f.dir).Load(ctx, f.wallet.Address())
	require.NoError(t, err)
	assert.Zero(t, history.Current)
	_, statErr := os.Stat(filepath.Join(f.dir, file.RateLimitFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLedgerBridge_ValidateTransaction(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(t *testing.T, f *bridgeFixture, tx *domain.Transaction)
		codes   []domain.RejectionCode
		message string
	}{
		{
			name:   "valid",
			mutate: func(*testing.T, *bridgeFixture, *domain.Transaction) {},
		},
		{
			name: "tampered amount",
			mutate: func(_ *testing.T, _ *bridgeFixture, tx *domain.Transaction) {
				tx.Amount = 20
			},
			codes:   []domain.RejectionCode{domain.RejectInvalidSignature},
			message: "Invalid signature: does not verify",
		},
		{
			name: "unsigned",
			mutate: func(_ *testing.T, _ *bridgeFixture, tx *domain.Transaction) {
				tx.Signature = ""
			},
			codes:   []domain.RejectionCode{domain.RejectInvalidSignature},
			message: "Invalid signature: transaction is unsigned",
		},
		{
			name: "overdrawn",
			mutate: func(t *testing.T, f *bridgeFixture, tx *domain.Transaction) {
				tx.Amount = 5000
				f.resign(t, tx)
			},
			codes:   []domain.RejectionCode{domain.RejectInsufficientBalance},
			message: "Insufficient balance: have 1000, need 5000",
		},
		{
			name: "replayed nonce",
			mutate: func(t *testing.T, f *bridgeFixture, tx *domain.Transaction) {
				tx.Nonce = 0
				f.resign(t, tx)
			},
			codes:   []domain.RejectionCode{domain.RejectInvalidNonce},
			message: "Invalid nonce: 0 <= 0 (replay attack?)",
		},
		{
			name: "expired",
			mutate: func(_ *testing.T, f *bridgeFixture, _ *domain.Transaction) {
				f.bridge.now = func() time.Time { return time.Now().Add(6 * time.Minute) }
			},
			codes:   []domain.RejectionCode{domain.RejectExpired},
			message: "Transaction expired (older than 5 minutes)",
		},
		{
			name: "every failure is reported",
			mutate: func(t *testing.T, f *bridgeFixture, tx *domain.Transaction) {
				tx.Amount = 5000
				tx.Nonce = 0
				f.resign(t, tx)
				f.bridge.now = func() time.Time { return time.Now().Add(time.Hour) }
			},
			codes: []domain.RejectionCode{
				domain.RejectInsufficientBalance,
				domain.RejectInvalidNonce,
				domain.RejectExpired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestBridge(t)
			tx, err := f.wallet.CreateTransfer(ctx, testRecipient, 10, domain.CoinRGD, "")
			require.NoError(t, err)
			tt.mutate(t, f, tx)

			res := f.bridge.ValidateTransaction(ctx, tx)
			if len(tt.codes) == 0 {
				assert.True(t, res.Valid, res.Reason())
				assert.Empty(t, res.Errors)
				return
			}
			assert.False(t, res.Valid)
			assert.Equal(t, tt.codes, res.Codes())
			if tt.message != "" {
				assert.Contains(t, res.Reason(), tt.message)
			}
		})
	}
}

func TestLedgerBridge_UnregisteredSender(t *testing.T) {
	ctx := context.Background()
	other := newTestBridge(t)

	t.Run("provisionally trusted", func(t *testing.T) {
		f := newTestBridge(t)
		f.mint(t, other.wallet.Address(), domain.CoinRGD, 100)

		tx, err := other.wallet.CreateTransfer(ctx, f.wallet.Address(), 10, domain.CoinRGD, "")
		require.NoError(t, err)

		res := f.bridge.ValidateTransaction(ctx, tx)
		assert.True(t, res.Valid, res.Reason())
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "not registered")
		assert.Contains(t, securityLog(t, f.dir), "UNREGISTERED_SENDER")
	})

	t.Run("rejected when trust is off", func(t *testing.T) {
		dir := t.TempDir()
		cfg := DefaultBridgeConfig()
		cfg.TrustUnregisteredSenders = false
		f := newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), cfg)
		f.mint(t, other.wallet.Address(), domain.CoinRGD, 100)

		tx, err := other.wallet.CreateTransfer(ctx, f.wallet.Address(), 10, domain.CoinRGD, "")
		require.NoError(t, err)

		res := f.bridge.ValidateTransaction(ctx, tx)
		assert.Equal(t, []domain.RejectionCode{domain.RejectUnknownSender}, res.Codes())

		pub, err := other.wallet.PublicKey()
		require.NoError(t, err)
		f.bridge.RegisterPublicKey(other.wallet.Address(), pub)
		res = f.bridge.ValidateTransaction(ctx, tx)
		assert.True(t, res.Valid, res.Reason())
	})
}

// pendingRecord mirrors what another process would queue for tx.
func pendingRecord(tx *domain.Transaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		Type:      domain.LedgerTxTokenTransfer,
		Sender:    tx.From,
		Timestamp: tx.Timestamp,
		Data: domain.LedgerTxData{
			From: tx.From, To: tx.To, Coin: tx.Coin, Amount: tx.Amount,
			Nonce: tx.Nonce, Signature: tx.Signature, WalletTxID: tx.ID,
		},
	}
}

func TestLedgerBridge_DuplicateSubmission(t *testing.T) {
	ctx := context.Background()

	t.Run("pending record queued since the last sync", func(t *testing.T) {
		f := newTestBridge(t)
		tx, err := f.wallet.CreateTransfer(ctx, testRecipient, 10, domain.CoinRGD, "")
		require.NoError(t, err)
		require.True(t, f.bridge.ValidateTransaction(ctx, tx).Valid)

		require.NoError(t, f.chain.AddPending(ctx, pendingRecord(tx)))

		res := f.bridge.ValidateTransaction(ctx, tx)
		assert.Equal(t, []domain.RejectionCode{domain.RejectDoubleSpend}, res.Codes())
		assert.Equal(t, "Transaction already in pending pool (double-spend attempt)", res.Reason())
	})

	t.Run("already committed", func(t *testing.T) {
		f := newTestBridge(t)
		tx, err := f.wallet.CreateTransfer(ctx, testRecipient, 10, domain.CoinRGD, "")
		require.NoError(t, err)
		require.NoError(t, f.chain.AddPending(ctx, pendingRecord(tx)))
		_, err = f.bridge.MineBlock(ctx)
		require.NoError(t, err)

		res := f.bridge.ValidateTransaction(ctx, tx)
		assert.True(t, res.Has(domain.RejectDoubleSpend))
		assert.True(t, res.Has(domain.RejectInvalidNonce))
		assert.Contains(t, res.Reason(), "Transaction already committed to the chain")
	})
}

// faultyLedger fails selected calls of the wrapped ledger.
type faultyLedger struct {
	ports.Ledger
	pendingErr error
	titheErr   error
}

func (l *faultyLedger) Pending(ctx context.Context) ([]domain.LedgerTransaction, error) {
	if l.pendingErr != nil {
		return nil, l.pendingErr
	}
	return l.Ledger.Pending(ctx)
}

func (l *faultyLedger) AddPending(ctx context.Context, txs ...domain.LedgerTransaction) error {
	for i := range txs {
		if l.titheErr != nil && txs[i].Type == domain.LedgerTxEducationTithe {
			return l.titheErr
		}
	}
	return l.Ledger.AddPending(ctx, txs...)
}

func TestLedgerBridge_PendingPoolUnreadable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	chain := &faultyLedger{Ledger: newTestChain(dir, testChainConfig())}
	f := newBridgeFixture(t, dir, chain, DefaultBridgeConfig())

	tx, err := f.wallet.CreateTransfer(ctx, testRecipient, 10, domain.CoinRGD, "")
	require.NoError(t, err)
	f.bridge.seen.AddString(tx.ID)

	chain.pendingErr = errors.New("pending pool unreadable")
	res := f.bridge.ValidateTransaction(ctx, tx)
	assert.False(t, res.Valid)
	assert.Equal(t, []domain.RejectionCode{domain.RejectLedgerUnavailable}, res.Codes())

	_, err = f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRGD, "")
	requireAppCode(t, err, "LED_002")
}

func TestLedgerBridge_TransferAndTitheQueuedTogether(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	chain := &faultyLedger{Ledger: newTestChain(dir, testChainConfig())}
	f := newBridgeFixture(t, dir, chain, DefaultBridgeConfig())
	f.mint(t, f.wallet.Address(), domain.CoinRC, 100)

	chain.titheErr = errors.New("disk full")
	_, err := f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRC, "")
	requireAppCode(t, err, "LED_002")

	pending, err := chain.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "a failed tithe must not leave the transfer queued")

	// A retry pays exactly once.
	chain.titheErr = nil
	_, err = f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRC, "")
	require.NoError(t, err)
	pending, err = chain.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, domain.LedgerTxTokenTransfer, pending[0].Type)
	assert.Equal(t, domain.LedgerTxEducationTithe, pending[1].Type)

	_, err = f.bridge.MineBlock(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 88.99, f.bridge.Balance("", domain.CoinRC), 1e-9)
}

func TestLedgerBridge_InitAdvancesLostNonces(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), DefaultBridgeConfig())

	_, err := f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRGD, "")
	require.NoError(t, err)
	_, err = f.bridge.MineBlock(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, file.NonceFile)))

	restarted := newBridgeFixture(t, dir, newTestChain(dir, testChainConfig()), DefaultBridgeConfig())
	_, err = restarted.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRGD, "")
	require.NoError(t, err)

	pending, err := restarted.chain.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint64(2), pending[0].Data.Nonce)
}

func TestLedgerBridge_RejectedTransfer(t *testing.T) {
	ctx := context.Background()
	f := newTestBridge(t)
	rejected, unsub := f.events.Subscribe(domain.EventTransferRejected)
	defer unsub()

	_, err := f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRGD, "")
	require.NoError(t, err)
	_, err = f.bridge.MineBlock(ctx)
	require.NoError(t, err)

	// Losing the nonce file makes the wallet reissue nonce 1.
	require.NoError(t, os.Remove(filepath.Join(f.dir, file.NonceFile)))

	_, err = f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRGD, "")
	requireAppCode(t, err, "LED_001")
	assert.Contains(t, err.Error(), "Invalid nonce: 1 <= 1 (replay attack?)")

	require.Len(t, rejected, 1)
	event := <-rejected
	assert.True(t, event.Validation.Has(domain.RejectInvalidNonce))
	assert.Contains(t, securityLog(t, f.dir), "TRANSACTION_REJECTED")
	assert.Equal(t, 1.0, metricValue(t, f.metrics.TransfersRejected.WithLabelValues("invalid_nonce")))

	pending, err := f.chain.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, 990.0, f.bridge.Balance("", domain.CoinRGD))
}

func TestLedgerBridge_AutoMine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	chain := newTestChain(dir, ledger.Config{Difficulty: 1, MaxTransactionsPerBlock: 2, AutoMine: true})
	f := newBridgeFixture(t, dir, chain, DefaultBridgeConfig())
	blocks, unsub := f.events.Subscribe(domain.EventBlockApplied)
	defer unsub()
	f.mint(t, f.wallet.Address(), domain.CoinRC, 50)
	<-blocks

	// Transfer plus tithe fills the block.
	receipt, err := f.bridge.SendTokens(ctx, testRecipient, 5, domain.CoinRC, "")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", receipt.Status)
	require.NotNil(t, receipt.BlockIndex)
	assert.Equal(t, int64(3), *receipt.BlockIndex)

	event := <-blocks
	assert.Equal(t, int64(3), event.Block.Index)
	assert.InDelta(t, 50-5-0.005-0.5, f.bridge.Balance("", domain.CoinRC), 1e-9)
	assert.Equal(t, 4.0, metricValue(t, f.metrics.ChainHeight))
	assert.Zero(t, metricValue(t, f.metrics.PendingTransactions))
	assert.Equal(t, 1.0, metricValue(t, f.metrics.TransfersAccepted.WithLabelValues(domain.CoinRC)))
}

func TestLedgerBridge_SyncAppliesForeignBlocks(t *testing.T) {
	ctx := context.Background()
	chain := newTestChain(t.TempDir(), testChainConfig())
	alice := newBridgeFixture(t, t.TempDir(), chain, DefaultBridgeConfig())
	bob := newBridgeFixture(t, t.TempDir(), chain, DefaultBridgeConfig())

	require.NoError(t, alice.bridge.Sync(ctx))
	assert.Equal(t, 1000.0, alice.bridge.Balance(bob.wallet.Address(), domain.CoinRGD))

	_, err := bob.bridge.SendTokens(ctx, alice.wallet.Address(), 25, domain.CoinRGD, "thanks")
	require.NoError(t, err)
	_, err = bob.bridge.MineBlock(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, alice.wallet.Balance(domain.CoinRGD))
	require.NoError(t, alice.bridge.Sync(ctx))
	assert.Equal(t, 1025.0, alice.bridge.Balance("", domain.CoinRGD))
	assert.Equal(t, 1025.0, alice.wallet.Balance(domain.CoinRGD))
	assert.Equal(t, 975.0, alice.bridge.Balance(bob.wallet.Address(), domain.CoinRGD))

	history, err := alice.bridge.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "received", history[0].Direction)
	assert.Equal(t, "thanks", history[0].Data.Memo)
}

func TestLedgerBridge_HistoryPendingFirst(t *testing.T) {
	ctx := context.Background()
	f := newTestBridge(t)

	_, err := f.bridge.SendTokens(ctx, testRecipient, 1, domain.CoinRGD, "first")
	require.NoError(t, err)
	_, err = f.bridge.MineBlock(ctx)
	require.NoError(t, err)
	_, err = f.bridge.SendTokens(ctx, testRecipient, 2, domain.CoinRGD, "second")
	require.NoError(t, err)

	history, err := f.bridge.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "second", history[0].Data.Memo)
	assert.False(t, history[0].Confirmed)
	assert.Equal(t, "first", history[1].Data.Memo)
	assert.True(t, history[1].Confirmed)
	assert.Equal(t, domain.LedgerTxTokenMint, history[2].Type)

	limited, err := f.bridge.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLedgerBridge_NotInitialized(t *testing.T) {
	ctx := context.Background()
	b := NewLedgerBridge(nil, nil, nil, nil, nil, DefaultBridgeConfig(), newTestLogger())

	_, err := b.SendTokens(ctx, testRecipient, 1, domain.CoinRGD, "")
	requireAppCode(t, err, "ID_001")
	_, err = b.MineBlock(ctx)
	requireAppCode(t, err, "ID_001")
	_, err = b.History(ctx, 10)
	requireAppCode(t, err, "ID_001")
	requireAppCode(t, b.Sync(ctx), "ID_001")
}

func TestLedgerBridge_LedgerUnavailable(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockLedger(ctrl)
	chain.EXPECT().Chain(gomock.Any()).Return(nil, nil).AnyTimes()
	chain.EXPECT().Pending(gomock.Any()).Return(nil, nil).AnyTimes()

	cfg := DefaultBridgeConfig()
	cfg.WelcomeGrant = 0
	f := newBridgeFixture(t, t.TempDir(), chain, cfg)

	f.bridge.tracker.SetBalance(f.wallet.Address(), domain.CoinRGD, 100)
	require.NoError(t, f.wallet.UpdateBalance(domain.CoinRGD, 100))

	chain.EXPECT().AddPending(gomock.Any(), gomock.Any()).Return(errors.New("ledger offline"))
	_, err := f.bridge.SendTokens(ctx, testRecipient, 10, domain.CoinRGD, "")
	requireAppCode(t, err, "LED_002")
}

func TestLedgerBridge_RunMiner(t *testing.T) {
	f := newTestBridge(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := f.bridge.SendTokens(ctx, testRecipient, 5, domain.CoinRGD, "")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		f.bridge.RunMiner(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return f.bridge.Balance(testRecipient, domain.CoinRGD) == 5
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("miner did not stop")
	}
}
