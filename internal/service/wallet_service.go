package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/apperror"

	"github.com/rs/zerolog"
)

// WalletFile is the encrypted balance cache, sealed with the identity key.
const WalletFile = "wallet.enc"

// WalletConfig holds wallet settings.
type WalletConfig struct {
	Username  string
	RateLimit domain.RateLimitPolicy
}

// Wallet implements ports.WalletService. It signs transfers with the
// hardware-bound identity key and keeps a local, non-authoritative balance cache.
type Wallet struct {
	identity ports.IdentityStore
	crypto   ports.CryptoEngine
	nonces   ports.NonceRepository
	limits   ports.RateLimitRepository
	cfg      WalletConfig
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	address string
	state   *domain.WalletState
	pending map[string]struct{}
}

// NewWallet creates a wallet. Call Init before use.
func NewWallet(
	identity ports.IdentityStore,
	crypto ports.CryptoEngine,
	nonces ports.NonceRepository,
	limits ports.RateLimitRepository,
	cfg WalletConfig,
	log zerolog.Logger,
) *Wallet {
	return &Wallet{
		identity: identity,
		crypto:   crypto,
		nonces:   nonces,
		limits:   limits,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		pending:  make(map[string]struct{}),
	}
}

// Init loads or creates the identity, derives the address and loads the balance cache.
func (w *Wallet) Init(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.address != "" {
		return nil
	}

	identity, err := w.identity.GetOrCreateIdentity(ctx, w.cfg.Username)
	if err != nil {
		return err
	}
	address := domain.DeriveAddress(identity.PublicKey)

	var state domain.WalletState
	ok, err := w.identity.Open(WalletFile, &state)
	if err != nil {
		w.log.Warn().Err(err).Msg("wallet cache unreadable, starting a new one")
	}
	if !ok || err != nil || state.Address != address {
		state = domain.WalletState{
			Version:  domain.WalletVersion,
			Address:  address,
			Created:  w.now().UTC(),
			Balances: domain.StartingBalances(),
		}
		if err := w.identity.Seal(WalletFile, &state); err != nil {
			return err
		}
	}

	w.address = address
	w.state = &state
	w.log.Info().Str("address", address).Msg("wallet initialized")
	return nil
}

// Address returns the wallet address, empty before Init.
func (w *Wallet) Address() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.address
}

// PublicKey returns the identity public key.
func (w *Wallet) PublicKey() (string, error) {
	return w.identity.PublicKey()
}

// CreateTransfer validates, signs and books a TRANSFER transaction. Balances
// are not debited here; the ledger replay is authoritative.
func (w *Wallet) CreateTransfer(ctx context.Context, to string, amount float64, coin, memo string) (*domain.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.address == "" {
		return nil, apperror.ErrIdentityNotInitialized()
	}
	if !domain.IsValidAddress(to) {
		return nil, apperror.ErrInvalidAddress(to)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperror.ErrInvalidAmount()
	}
	c, ok := domain.LookupCoin(coin)
	if !ok {
		return nil, apperror.ErrUnknownCoin(coin)
	}

	fee := c.Fee(amount)
	if balance := w.state.Balances[coin]; balance < amount+fee {
		return nil, apperror.ErrInsufficientBalance(balance, amount+fee)
	}

	now := w.now()
	var window *domain.RateLimitWindow
	if c.RealValue {
		var err error
		if window, err = w.loadWindow(ctx, now); err != nil {
			return nil, err
		}
		switch code, reason := window.Check(amount, w.cfg.RateLimit); code {
		case domain.RejectDailyLimit:
			return nil, apperror.ErrDailyLimitExceeded(reason)
		case domain.RejectMinuteLimit:
			return nil, apperror.ErrMinuteLimitExceeded(reason)
		}
	}

	history, err := w.nonces.Load(ctx, w.address)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("loading nonces: %w", err))
	}
	nonce := history.Next()

	id, err := newTransactionID()
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	tx := &domain.Transaction{
		Version:      domain.TransactionVersion,
		ID:           id,
		Type:         domain.TransactionTypeTransfer,
		Coin:         coin,
		From:         w.address,
		To:           to,
		Amount:       amount,
		Fee:          fee,
		Nonce:        nonce,
		Timestamp:    now.UnixMilli(),
		Memo:         memo,
		HardwareHash: w.identity.HardwareHash(),
	}
	sig, err := w.identity.SignMessage(tx.SignableData())
	if err != nil {
		return nil, err
	}
	tx.Signature = sig

	history.Record(nonce)
	if err := w.nonces.Save(ctx, w.address, history); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("saving nonces: %w", err))
	}
	if window != nil {
		window.Record(amount)
		if err := w.limits.Save(ctx, w.address, window); err != nil {
			return nil, apperror.ErrStorageFailure(fmt.Errorf("saving rate limits: %w", err))
		}
	}

	w.pending[tx.ID] = struct{}{}
	w.state.Stats.TxCount++
	w.state.Stats.TotalSent += amount
	w.persist()

	w.log.Info().
		Str("tx_id", tx.ID).
		Str("to", to).
		Float64("amount", amount).
		Str("coin", coin).
		Uint64("nonce", nonce).
		Msg("transfer signed")
	return tx, nil
}

func (w *Wallet) loadWindow(ctx context.Context, now time.Time) (*domain.RateLimitWindow, error) {
	window, err := w.limits.Load(ctx, w.address)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("loading rate limits: %w", err))
	}
	if window == nil {
		return domain.NewRateLimitWindow(now), nil
	}
	window.Roll(now, w.cfg.RateLimit)
	return window, nil
}

func newTransactionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating transaction id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// VerifyTransaction checks the signature against senderPublicKey and the expiry window.
func (w *Wallet) VerifyTransaction(tx *domain.Transaction, senderPublicKey string) *domain.ValidationResult {
	res := &domain.ValidationResult{Valid: true}
	switch {
	case tx.Signature == "":
		res.Reject(domain.RejectInvalidSignature, "No signature")
	case !w.crypto.Verify(tx.SignableData(), tx.Signature, senderPublicKey):
		res.Reject(domain.RejectInvalidSignature, "Invalid signature")
	}
	if tx.IsExpired(w.now()) {
		res.Reject(domain.RejectExpired, "Transaction expired")
	}
	return res
}

// IsNonceUsed reports whether address already used nonce.
func (w *Wallet) IsNonceUsed(ctx context.Context, address string, nonce uint64) (bool, error) {
	history, err := w.nonces.Load(ctx, address)
	if err != nil {
		return false, apperror.ErrStorageFailure(fmt.Errorf("loading nonces: %w", err))
	}
	return history.IsUsed(nonce), nil
}

// IsDoubleSpend reports whether tx replays a used nonce or is already pending here.
func (w *Wallet) IsDoubleSpend(ctx context.Context, tx *domain.Transaction) (bool, error) {
	used, err := w.IsNonceUsed(ctx, tx.From, tx.Nonce)
	if err != nil || used {
		return used, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, pending := w.pending[tx.ID]
	return pending, nil
}

// MarkConfirmed drops txID from the pending set.
func (w *Wallet) MarkConfirmed(txID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, txID)
}

// AdvanceNonce raises the nonce counter to floor when the stored history is
// behind the ledger, e.g. after the nonce store was lost or flushed.
func (w *Wallet) AdvanceNonce(ctx context.Context, floor uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.address == "" {
		return apperror.ErrIdentityNotInitialized()
	}

	history, err := w.nonces.Load(ctx, w.address)
	if err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("loading nonces: %w", err))
	}
	if history.Current >= floor {
		return nil
	}
	w.log.Warn().
		Uint64("stored", history.Current).
		Uint64("ledger", floor).
		Msg("nonce store behind ledger, advancing")
	history.Current = floor
	if err := w.nonces.Save(ctx, w.address, history); err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("saving nonces: %w", err))
	}
	return nil
}

// Balance returns the cached balance, 0 before Init.
func (w *Wallet) Balance(coin string) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == nil {
		return 0
	}
	return w.state.Balances[coin]
}

// Balances returns a copy of every cached balance.
func (w *Wallet) Balances() map[string]float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]float64)
	if w.state == nil {
		return out
	}
	for coin, v := range w.state.Balances {
		out[coin] = v
	}
	return out
}

// UpdateBalance overwrites one cached balance and persists the cache.
func (w *Wallet) UpdateBalance(coin string, amount float64) error {
	if _, ok := domain.LookupCoin(coin); !ok {
		return apperror.ErrUnknownCoin(coin)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == nil {
		return apperror.ErrIdentityNotInitialized()
	}
	w.state.Balances[coin] = amount
	return w.identity.Seal(WalletFile, w.state)
}

// SyncBalances replaces the cached balances of every coin present in balances.
func (w *Wallet) SyncBalances(balances map[string]float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == nil {
		return apperror.ErrIdentityNotInitialized()
	}
	for _, coin := range domain.CoinSymbols {
		v, ok := balances[coin]
		if !ok {
			continue
		}
		w.state.Balances[coin] = v
	}
	return w.identity.Seal(WalletFile, w.state)
}

// RateLimitStatus reports the daily window without consuming it.
func (w *Wallet) RateLimitStatus(ctx context.Context) (domain.RateLimitStatus, error) {
	w.mu.Lock()
	address := w.address
	w.mu.Unlock()
	if address == "" {
		return domain.RateLimitStatus{}, apperror.ErrIdentityNotInitialized()
	}

	now := w.now()
	window, err := w.limits.Load(ctx, address)
	if err != nil {
		return domain.RateLimitStatus{}, apperror.ErrStorageFailure(fmt.Errorf("loading rate limits: %w", err))
	}
	if window == nil {
		window = domain.NewRateLimitWindow(now)
	}
	return window.Status(now, w.cfg.RateLimit), nil
}

// Summary returns the public wallet snapshot.
func (w *Wallet) Summary(ctx context.Context) (*domain.WalletSummary, error) {
	limits, err := w.RateLimitStatus(ctx)
	if err != nil {
		return nil, err
	}
	identity, err := w.identity.Identity()
	if err != nil {
		return nil, err
	}
	hwHash := w.identity.HardwareHash()
	summary := identity.Summary(hwHash)

	return &domain.WalletSummary{
		Address:      w.Address(),
		Balances:     w.Balances(),
		RateLimits:   limits,
		Identity:     &summary,
		IsVM:         w.identity.IsVM(),
		HardwareHash: hwHash,
	}, nil
}

// Stats returns the wallet counters.
func (w *Wallet) Stats() domain.WalletStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == nil {
		return domain.WalletStats{}
	}
	return w.state.Stats
}

// SupportedCoins lists the coin table in display order.
func (w *Wallet) SupportedCoins() []domain.Coin {
	out := make([]domain.Coin, 0, len(domain.CoinSymbols))
	for _, sym := range domain.CoinSymbols {
		out = append(out, domain.Coins[sym])
	}
	return out
}

// CoinInfo looks up one coin.
func (w *Wallet) CoinInfo(symbol string) (domain.Coin, error) {
	c, ok := domain.LookupCoin(symbol)
	if !ok {
		return domain.Coin{}, apperror.ErrUnknownCoin(symbol)
	}
	return c, nil
}

// EducationTithe is the share of amount a transfer of coin routes to education.
func (w *Wallet) EducationTithe(amount float64, coin string) float64 {
	c, ok := domain.LookupCoin(coin)
	if !ok {
		return 0
	}
	return c.Tithe(amount)
}

// persist writes the cache; failures are logged since the cache can be rebuilt from the ledger.
func (w *Wallet) persist() {
	if err := w.identity.Seal(WalletFile, w.state); err != nil {
		w.log.Warn().Err(err).Msg("failed to persist wallet cache")
	}
}
