package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/apperror"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/rs/zerolog"
)

// TithePurpose is recorded on every education tithe.
const TithePurpose = "10% Education Tithe - Supporting disability education worldwide"

// BridgeConfig holds ledger bridge settings.
type BridgeConfig struct {
	// TrustUnregisteredSenders admits transactions from senders whose public
	// key was never registered, with a warning and a security event.
	TrustUnregisteredSenders bool
	// WelcomeGrant is minted in RGD to an address with no ledger history. Zero disables it.
	WelcomeGrant float64
	HistoryLimit int
	// SeenCapacity and SeenFalsePositive size the duplicate-submission filter.
	SeenCapacity      uint
	SeenFalsePositive float64
}

// DefaultBridgeConfig returns the stock bridge settings.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		TrustUnregisteredSenders: true,
		WelcomeGrant:             1000,
		HistoryLimit:             50,
		SeenCapacity:             100_000,
		SeenFalsePositive:        0.001,
	}
}

// LedgerBridge implements ports.LedgerBridge. It owns the balance table rebuilt
// from committed blocks; pending records are only used for duplicate checks.
type LedgerBridge struct {
	wallet  ports.WalletService
	ledger  ports.Ledger
	audit   ports.SecurityAuditor
	events  *EventBus
	metrics *Metrics
	cfg     BridgeConfig
	log     zerolog.Logger
	now     func() time.Time

	mu           sync.Mutex
	address      string
	tracker      *domain.BalanceTracker
	publicKeys   map[string]string
	seen         *bloom.BloomFilter
	height       int
	walletSynced bool
}

// NewLedgerBridge wires a wallet to a ledger.
func NewLedgerBridge(
	wallet ports.WalletService,
	ledger ports.Ledger,
	audit ports.SecurityAuditor,
	events *EventBus,
	metrics *Metrics,
	cfg BridgeConfig,
	log zerolog.Logger,
) *LedgerBridge {
	if cfg.SeenCapacity == 0 {
		cfg.SeenCapacity = DefaultBridgeConfig().SeenCapacity
	}
	if cfg.SeenFalsePositive <= 0 || cfg.SeenFalsePositive >= 1 {
		cfg.SeenFalsePositive = DefaultBridgeConfig().SeenFalsePositive
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultBridgeConfig().HistoryLimit
	}
	if events == nil {
		events = NewEventBus(0, log)
	}
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &LedgerBridge{
		wallet:     wallet,
		ledger:     ledger,
		audit:      audit,
		events:     events,
		metrics:    metrics,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
		tracker:    domain.NewBalanceTracker(domain.FeeSinkAddress),
		publicKeys: make(map[string]string),
		seen:       bloom.NewWithEstimates(cfg.SeenCapacity, cfg.SeenFalsePositive),
	}
}

// Init opens the wallet, rebuilds balances from the chain and issues the welcome grant.
func (b *LedgerBridge) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.wallet.Init(ctx); err != nil {
		return err
	}
	address := b.wallet.Address()
	pub, err := b.wallet.PublicKey()
	if err != nil {
		return err
	}
	b.address = address
	b.publicKeys[address] = pub

	b.tracker.Reset()
	b.height = 0
	b.walletSynced = false
	if err := b.syncLocked(ctx); err != nil {
		return err
	}

	if b.cfg.WelcomeGrant > 0 {
		fresh, err := b.hasNoHistoryLocked(ctx)
		if err != nil {
			return err
		}
		if fresh {
			if err := b.grantWelcomeLocked(ctx); err != nil {
				return err
			}
		}
	}

	if err := b.wallet.AdvanceNonce(ctx, b.tracker.Nonce(address)); err != nil {
		return err
	}

	b.log.Info().
		Str("address", address).
		Int("height", b.height).
		Interface("balances", b.tracker.AllBalances(address)).
		Msg("ledger bridge initialized")
	return nil
}

func (b *LedgerBridge) hasNoHistoryLocked(ctx context.Context) (bool, error) {
	chain, err := b.ledger.Chain(ctx)
	if err != nil {
		return false, apperror.ErrLedgerUnavailable(err)
	}
	for i := range chain {
		for j := range chain[i].Transactions {
			if chain[i].Transactions[j].Involves(b.address) {
				return false, nil
			}
		}
	}
	pending, err := b.ledger.Pending(ctx)
	if err != nil {
		return false, apperror.ErrLedgerUnavailable(err)
	}
	for i := range pending {
		if pending[i].Involves(b.address) {
			return false, nil
		}
	}
	return true, nil
}

func (b *LedgerBridge) grantWelcomeLocked(ctx context.Context) error {
	grant := domain.LedgerTransaction{
		Type:      domain.LedgerTxTokenMint,
		Sender:    domain.SystemAddressMint,
		Timestamp: b.now().UnixMilli(),
		Data: domain.LedgerTxData{
			Recipient: b.address,
			Coin:      domain.CoinRGD,
			Amount:    b.cfg.WelcomeGrant,
			Memo:      "Welcome grant",
		},
	}
	if err := b.ledger.AddPending(ctx, grant); err != nil {
		return apperror.ErrLedgerUnavailable(fmt.Errorf("adding welcome grant: %w", err))
	}
	if _, err := b.ledger.MineBlock(ctx, b.address); err != nil {
		return apperror.ErrLedgerUnavailable(fmt.Errorf("mining welcome grant: %w", err))
	}
	b.log.Info().
		Str("address", b.address).
		Float64("amount", b.cfg.WelcomeGrant).
		Msg("welcome grant issued")
	return b.syncLocked(ctx)
}

// RegisterPublicKey lets the bridge verify signatures from address.
func (b *LedgerBridge) RegisterPublicKey(address, publicKeyPEM string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.publicKeys[address] = publicKeyPEM
}

// ValidateTransaction runs every admission check and reports all failures together.
func (b *LedgerBridge) ValidateTransaction(ctx context.Context, tx *domain.Transaction) *domain.ValidationResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validateLocked(ctx, tx)
}

func (b *LedgerBridge) validateLocked(ctx context.Context, tx *domain.Transaction) *domain.ValidationResult {
	res := &domain.ValidationResult{Valid: true}

	pub, registered := b.publicKeys[tx.From]
	switch {
	case !registered && b.cfg.TrustUnregisteredSenders:
		res.Warnings = append(res.Warnings, fmt.Sprintf("Sender %s is not registered; signature not verified", tx.From))
		b.log.Warn().Str("from", tx.From).Str("tx_id", tx.ID).Msg("admitting transaction from unregistered sender")
		b.audit.Record(ctx, domain.EventUnregisteredSender, map[string]any{
			"address": tx.From,
			"txId":    tx.ID,
		})
	case !registered:
		res.Reject(domain.RejectUnknownSender, fmt.Sprintf("Unknown sender: %s has no registered public key", tx.From))
	case tx.Signature == "":
		res.Reject(domain.RejectInvalidSignature, "Invalid signature: transaction is unsigned")
	case b.wallet.VerifyTransaction(tx, pub).Has(domain.RejectInvalidSignature):
		res.Reject(domain.RejectInvalidSignature, fmt.Sprintf("Invalid signature: does not verify against the key of %s", tx.From))
	}

	need := tx.Amount + tx.Fee + tithe(tx.Coin, tx.Amount)
	if have := b.tracker.Balance(tx.From, tx.Coin); have < need {
		res.Reject(domain.RejectInsufficientBalance, fmt.Sprintf("Insufficient balance: have %g, need %g", have, need))
	}

	if last := b.tracker.Nonce(tx.From); tx.Nonce <= last {
		res.Reject(domain.RejectInvalidNonce, fmt.Sprintf("Invalid nonce: %d <= %d (replay attack?)", tx.Nonce, last))
	}

	if tx.IsExpired(b.now()) {
		res.Reject(domain.RejectExpired, "Transaction expired (older than 5 minutes)")
	}

	b.checkDuplicateLocked(ctx, tx, res)
	return res
}

// checkDuplicateLocked always scans the pending pool. The seen filter only
// decides whether the committed chain is worth scanning as well.
func (b *LedgerBridge) checkDuplicateLocked(ctx context.Context, tx *domain.Transaction, res *domain.ValidationResult) {
	pending, err := b.ledger.Pending(ctx)
	if err != nil {
		b.log.Error().Err(err).Str("tx_id", tx.ID).Msg("failed to scan pending pool")
		res.Reject(domain.RejectLedgerUnavailable, "Ledger unavailable: pending pool could not be checked for duplicates")
		return
	}
	for i := range pending {
		if pending[i].Data.WalletTxID == tx.ID {
			res.Reject(domain.RejectDoubleSpend, "Transaction already in pending pool (double-spend attempt)")
			return
		}
	}

	if !b.seen.TestString(tx.ID) {
		return
	}
	chain, err := b.ledger.Chain(ctx)
	if err != nil {
		b.log.Error().Err(err).Str("tx_id", tx.ID).Msg("failed to scan chain")
		res.Reject(domain.RejectLedgerUnavailable, "Ledger unavailable: chain could not be checked for duplicates")
		return
	}
	for i := range chain {
		if blockContains(&chain[i], tx.ID) {
			res.Reject(domain.RejectDoubleSpend, "Transaction already committed to the chain (double-spend attempt)")
			return
		}
	}
}

func tithe(coin string, amount float64) float64 {
	c, ok := domain.LookupCoin(coin)
	if !ok {
		return 0
	}
	return c.Tithe(amount)
}

// SendTokens signs a transfer, validates it and queues it with its tithe.
func (b *LedgerBridge) SendTokens(ctx context.Context, to string, amount float64, coin, memo string) (*domain.TransferReceipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.address == "" {
		return nil, apperror.ErrIdentityNotInitialized()
	}

	// Tithe-inclusive total, checked before the wallet spends a nonce.
	if c, ok := domain.LookupCoin(coin); ok && amount > 0 {
		need := amount + c.Fee(amount) + c.Tithe(amount)
		if have := b.tracker.Balance(b.address, coin); have < need {
			return nil, apperror.ErrInsufficientBalance(have, need)
		}
	}

	tx, err := b.wallet.CreateTransfer(ctx, to, amount, coin, memo)
	if err != nil {
		return nil, err
	}

	if v := b.validateLocked(ctx, tx); !v.Valid {
		b.wallet.MarkConfirmed(tx.ID)
		b.audit.Record(ctx, domain.EventTransactionRejected, map[string]any{
			"txId":   tx.ID,
			"from":   tx.From,
			"to":     tx.To,
			"reason": v.Reason(),
		})
		b.metrics.transferRejected(v)
		b.events.Publish(domain.Event{Kind: domain.EventTransferRejected, At: b.now(), Validation: v})
		if v.Has(domain.RejectLedgerUnavailable) {
			return nil, apperror.ErrLedgerUnavailable(errors.New(v.Reason()))
		}
		return nil, apperror.ErrValidationFailed(v.Reason())
	}

	record := domain.LedgerTransaction{
		Type:      domain.LedgerTxTokenTransfer,
		Sender:    tx.From,
		Timestamp: tx.Timestamp,
		Data: domain.LedgerTxData{
			From:         tx.From,
			To:           tx.To,
			Coin:         tx.Coin,
			Amount:       tx.Amount,
			Fee:          tx.Fee,
			Nonce:        tx.Nonce,
			Memo:         tx.Memo,
			Signature:    tx.Signature,
			HardwareHash: tx.HardwareHash,
			WalletTxID:   tx.ID,
		},
	}
	records := []domain.LedgerTransaction{record}

	titheAmount := tithe(tx.Coin, tx.Amount)
	if titheAmount > 0 {
		records = append(records, domain.LedgerTransaction{
			Type:      domain.LedgerTxEducationTithe,
			Sender:    tx.From,
			Timestamp: tx.Timestamp,
			Data: domain.LedgerTxData{
				From:    tx.From,
				To:      domain.SystemAddressEducation,
				Coin:    tx.Coin,
				Amount:  titheAmount,
				Memo:    "Tithe for " + tx.ID,
				Purpose: TithePurpose,
			},
		})
	}

	// The transfer and its tithe are queued together or not at all.
	if err := b.ledger.AddPending(ctx, records...); err != nil {
		b.wallet.MarkConfirmed(tx.ID)
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	b.seen.AddString(tx.ID)

	receipt := &domain.TransferReceipt{
		TransactionID: tx.ID,
		Status:        "pending",
		From:          tx.From,
		To:            tx.To,
		Amount:        tx.Amount,
		Coin:          tx.Coin,
		Fee:           tx.Fee,
		Tithe:         titheAmount,
		Hash:          tx.Hash(),
	}

	block, err := b.ledger.CheckAutoMine(ctx, b.address)
	if err != nil {
		b.log.Warn().Err(err).Msg("auto-mine failed, transaction stays pending")
	}
	if block != nil {
		if err := b.syncLocked(ctx); err != nil {
			b.log.Warn().Err(err).Msg("failed to apply auto-mined block")
		}
		if blockContains(block, tx.ID) {
			idx := block.Index
			receipt.Status = "confirmed"
			receipt.BlockIndex = &idx
		}
	}
	b.refreshPendingGauge(ctx)

	b.metrics.TransfersAccepted.WithLabelValues(tx.Coin).Inc()
	b.events.Publish(domain.Event{Kind: domain.EventTransferAccepted, At: b.now(), Receipt: receipt})

	b.log.Info().
		Str("tx_id", tx.ID).
		Str("to", tx.To).
		Float64("amount", tx.Amount).
		Str("coin", tx.Coin).
		Float64("tithe", titheAmount).
		Str("status", receipt.Status).
		Msg("transfer submitted to ledger")
	return receipt, nil
}

func blockContains(block *domain.Block, walletTxID string) bool {
	for i := range block.Transactions {
		if block.Transactions[i].Data.WalletTxID == walletTxID {
			return true
		}
	}
	return false
}

// MineBlock mines the pending pool with this node as validator and applies the block.
// It returns nil, nil when nothing is pending.
func (b *LedgerBridge) MineBlock(ctx context.Context) (*domain.Block, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.address == "" {
		return nil, apperror.ErrIdentityNotInitialized()
	}
	block, err := b.ledger.MineBlock(ctx, b.address)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	if block == nil {
		return nil, nil
	}
	if err := b.syncLocked(ctx); err != nil {
		return block, err
	}
	b.refreshPendingGauge(ctx)
	return block, nil
}

// Sync applies blocks committed since the last replay, including blocks mined elsewhere.
func (b *LedgerBridge) Sync(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.address == "" {
		return apperror.ErrIdentityNotInitialized()
	}
	return b.syncLocked(ctx)
}

func (b *LedgerBridge) syncLocked(ctx context.Context) error {
	chain, err := b.ledger.Chain(ctx)
	if err != nil {
		return apperror.ErrLedgerUnavailable(err)
	}
	if len(chain) < b.height {
		b.log.Warn().
			Int("applied", b.height).
			Int("chain", len(chain)).
			Msg("chain shorter than applied height, replaying from genesis")
		b.tracker.Reset()
		b.height = 0
	}

	applied := 0
	for i := b.height; i < len(chain); i++ {
		block := chain[i]
		for j := range block.Transactions {
			b.applyLocked(&block.Transactions[j])
		}
		b.height = i + 1
		applied++

		b.metrics.BlocksApplied.Inc()
		b.events.Publish(domain.Event{Kind: domain.EventBlockApplied, At: b.now(), Block: &block})
	}
	b.metrics.ChainHeight.Set(float64(b.height))

	pending, err := b.ledger.Pending(ctx)
	if err != nil {
		return apperror.ErrLedgerUnavailable(err)
	}
	for i := range pending {
		if id := pending[i].Data.WalletTxID; id != "" {
			b.seen.AddString(id)
		}
	}
	b.metrics.PendingTransactions.Set(float64(len(pending)))

	if applied == 0 && b.walletSynced {
		return nil
	}
	if err := b.wallet.SyncBalances(b.tracker.AllBalances(b.address)); err != nil {
		return fmt.Errorf("syncing wallet cache: %w", err)
	}
	b.walletSynced = true

	if applied > 0 {
		b.log.Debug().Int("blocks", applied).Int("height", b.height).Msg("blocks applied")
	}
	return nil
}

// applyLocked replays one committed record into the balance table.
func (b *LedgerBridge) applyLocked(tx *domain.LedgerTransaction) {
	d := tx.Data
	switch tx.Type {
	case domain.LedgerTxTokenTransfer:
		b.tracker.ApplyTransfer(d.From, d.To, d.Coin, d.Amount, d.Fee)
		if d.Nonce > b.tracker.Nonce(d.From) {
			b.tracker.SetNonce(d.From, d.Nonce)
		}
	case domain.LedgerTxTokenMint:
		b.tracker.ApplyMint(recipientOf(d), d.Coin, d.Amount)
	case domain.LedgerTxTokenBurn:
		from := d.From
		if from == "" {
			from = tx.Sender
		}
		if !b.tracker.ApplyBurn(from, d.Coin, d.Amount) {
			b.log.Warn().Str("tx_id", tx.TxID).Str("from", from).Msg("burn from unknown address ignored")
		}
	case domain.LedgerTxReward:
		coin := d.Coin
		if coin == "" {
			coin = domain.CoinRGD
		}
		b.tracker.ApplyMint(recipientOf(d), coin, d.Amount)
	case domain.LedgerTxEducationTithe:
		to := d.To
		if to == "" {
			to = domain.SystemAddressEducation
		}
		b.tracker.ApplyTransfer(d.From, to, d.Coin, d.Amount, 0)
	case domain.LedgerTxGenesis:
	default:
		b.log.Warn().Str("tx_id", tx.TxID).Str("type", string(tx.Type)).Msg("unknown ledger record type skipped")
		return
	}

	if d.WalletTxID != "" {
		b.seen.AddString(d.WalletTxID)
		b.wallet.MarkConfirmed(d.WalletTxID)
	}
}

func recipientOf(d domain.LedgerTxData) string {
	if d.Recipient != "" {
		return d.Recipient
	}
	return d.To
}

func (b *LedgerBridge) refreshPendingGauge(ctx context.Context) {
	if pending, err := b.ledger.Pending(ctx); err == nil {
		b.metrics.PendingTransactions.Set(float64(len(pending)))
	}
}

// Balance returns the ledger balance of address; an empty address means this node.
func (b *LedgerBridge) Balance(address, coin string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if address == "" {
		address = b.address
	}
	return b.tracker.Balance(address, coin)
}

// Balances returns every ledger balance of address; an empty address means this node.
func (b *LedgerBridge) Balances(address string) map[string]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if address == "" {
		address = b.address
	}
	return b.tracker.AllBalances(address)
}

// History lists this node's records, pending first, newest first.
func (b *LedgerBridge) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	b.mu.Lock()
	address := b.address
	b.mu.Unlock()

	if address == "" {
		return nil, apperror.ErrIdentityNotInitialized()
	}
	if limit <= 0 {
		limit = b.cfg.HistoryLimit
	}

	pending, err := b.ledger.Pending(ctx)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	chain, err := b.ledger.Chain(ctx)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}

	entries := make([]domain.HistoryEntry, 0, limit)
	for i := len(pending) - 1; i >= 0 && len(entries) < limit; i-- {
		if pending[i].Involves(address) {
			entries = append(entries, historyEntry(pending[i], address, nil))
		}
	}
	for i := len(chain) - 1; i >= 0 && len(entries) < limit; i-- {
		block := &chain[i]
		for j := len(block.Transactions) - 1; j >= 0 && len(entries) < limit; j-- {
			if block.Transactions[j].Involves(address) {
				entries = append(entries, historyEntry(block.Transactions[j], address, block))
			}
		}
	}
	return entries, nil
}

func historyEntry(tx domain.LedgerTransaction, address string, block *domain.Block) domain.HistoryEntry {
	e := domain.HistoryEntry{LedgerTransaction: tx, Direction: "received"}
	if tx.Data.From == address {
		e.Direction = "sent"
	}
	if block != nil {
		idx := block.Index
		e.BlockIndex = &idx
		e.BlockHash = block.Hash
		e.Confirmed = true
	}
	return e
}

// LedgerStatus reports the ledger's chain summary.
func (b *LedgerBridge) LedgerStatus(ctx context.Context) (*domain.LedgerStatus, error) {
	status, err := b.ledger.Status(ctx)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	return status, nil
}

// Supply sums a coin over every address the bridge has seen, system addresses included.
func (b *LedgerBridge) Supply(coin string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracker.Supply(coin)
}

// RunMiner mines the pending pool every interval until ctx is cancelled.
func (b *LedgerBridge) RunMiner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.log.Info().Dur("interval", interval).Msg("miner started")
	for {
		select {
		case <-ctx.Done():
			b.log.Info().Msg("miner stopped")
			return
		case <-ticker.C:
			block, err := b.MineBlock(ctx)
			if err != nil {
				b.log.Error().Err(err).Msg("mining failed")
				continue
			}
			if block != nil {
				b.log.Info().Int64("index", block.Index).Int("transactions", block.TransactionCount).Msg("block applied")
			}
		}
	}
}
