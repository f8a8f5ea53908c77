package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"

	"github.com/rs/zerolog"
)

const genesisMessage = "RangerBlock Ledger Genesis"

// ErrChainCorrupt is returned by Verify when a block does not link or hash correctly.
var ErrChainCorrupt = errors.New("chain corrupt")

// Config controls block production.
type Config struct {
	Difficulty              int
	MaxTransactionsPerBlock int
	AutoMine                bool
}

// DefaultConfig mines at difficulty 2 and auto-mines every 10 pending transactions.
func DefaultConfig() Config {
	return Config{Difficulty: 2, MaxTransactionsPerBlock: 10, AutoMine: true}
}

// Chain is a single-validator proof-of-work ledger implementing ports.Ledger.
// State is loaded from the repository on first use.
type Chain struct {
	repo ports.LedgerRepository
	cfg  Config
	log  zerolog.Logger
	now  func() time.Time

	mu      sync.Mutex
	loaded  bool
	blocks  []domain.Block
	pending []domain.LedgerTransaction
}

// New creates a chain persisted through repo.
func New(repo ports.LedgerRepository, cfg Config, log zerolog.Logger) *Chain {
	if cfg.MaxTransactionsPerBlock <= 0 {
		cfg.MaxTransactionsPerBlock = DefaultConfig().MaxTransactionsPerBlock
	}
	return &Chain{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// NewTxID returns tx_<base36 ms>_<16 hex>.
func NewTxID(now time.Time) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "tx_" + strconv.FormatInt(now.UnixMilli(), 36) + "_" + hex.EncodeToString(b)
}

func (c *Chain) loadLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	blocks, err := c.repo.LoadChain(ctx)
	if err != nil {
		return fmt.Errorf("loading chain: %w", err)
	}
	pending, err := c.repo.LoadPending(ctx)
	if err != nil {
		return fmt.Errorf("loading pending pool: %w", err)
	}
	c.blocks, c.pending = blocks, pending

	if len(c.blocks) == 0 {
		genesis := c.genesisBlock()
		if err := c.repo.SaveBlock(ctx, genesis, c.pending); err != nil {
			return fmt.Errorf("saving genesis block: %w", err)
		}
		c.blocks = append(c.blocks, *genesis)
		c.log.Info().Str("hash", genesis.Hash).Msg("genesis block created")
	}

	c.loaded = true
	c.log.Info().
		Int("height", len(c.blocks)).
		Int("pending", len(c.pending)).
		Msg("ledger loaded")
	return nil
}

func (c *Chain) genesisBlock() *domain.Block {
	tx := domain.LedgerTransaction{
		TxID:      "tx_genesis",
		Type:      domain.LedgerTxGenesis,
		Sender:    "system",
		Timestamp: domain.GenesisTimestamp,
		Data:      domain.LedgerTxData{Memo: genesisMessage},
	}
	tx.Hash = tx.ComputeHash()

	txs := []domain.LedgerTransaction{tx}
	b := &domain.Block{
		Index:            0,
		PreviousHash:     "0",
		Timestamp:        domain.GenesisTimestamp,
		MerkleRoot:       domain.MerkleRoot(txs),
		TransactionCount: len(txs),
		Transactions:     txs,
		Validator:        &domain.Validator{NodeID: "genesis", Timestamp: domain.GenesisTimestamp},
	}
	b.Mine(c.cfg.Difficulty)
	return b
}

// AddPending appends txs to the pending pool in one write, assigning ids and
// hashes when missing. Nothing is queued if the write fails.
func (c *Chain) AddPending(ctx context.Context, txs ...domain.LedgerTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return err
	}

	next := make([]domain.LedgerTransaction, 0, len(c.pending)+len(txs))
	next = append(next, c.pending...)
	for _, tx := range txs {
		if tx.TxID == "" {
			tx.TxID = NewTxID(c.now())
		}
		if tx.Hash == "" {
			tx.Hash = tx.ComputeHash()
		}
		next = append(next, tx)
	}
	if err := c.repo.SavePending(ctx, next); err != nil {
		return fmt.Errorf("saving pending pool: %w", err)
	}
	c.pending = next
	return nil
}

// Pending returns a copy of the pending pool in arrival order.
func (c *Chain) Pending(ctx context.Context) ([]domain.LedgerTransaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	return append([]domain.LedgerTransaction(nil), c.pending...), nil
}

// Chain returns a copy of the blocks in index order.
func (c *Chain) Chain(ctx context.Context) ([]domain.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	return append([]domain.Block(nil), c.blocks...), nil
}

// MineBlock bundles up to MaxTransactionsPerBlock pending records into a new block.
// It returns nil, nil when nothing is pending.
func (c *Chain) MineBlock(ctx context.Context, validatorID string) (*domain.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	return c.mineLocked(ctx, validatorID)
}

func (c *Chain) mineLocked(ctx context.Context, validatorID string) (*domain.Block, error) {
	if len(c.pending) == 0 {
		return nil, nil
	}

	n := min(len(c.pending), c.cfg.MaxTransactionsPerBlock)
	txs := append([]domain.LedgerTransaction(nil), c.pending[:n]...)
	remaining := append([]domain.LedgerTransaction(nil), c.pending[n:]...)
	last := c.blocks[len(c.blocks)-1]
	now := c.now().UnixMilli()

	block := &domain.Block{
		Index:            last.Index + 1,
		PreviousHash:     last.Hash,
		Timestamp:        now,
		MerkleRoot:       domain.MerkleRoot(txs),
		TransactionCount: len(txs),
		Transactions:     txs,
		Validator:        &domain.Validator{NodeID: validatorID, Timestamp: now},
	}

	start := time.Now()
	block.Mine(c.cfg.Difficulty)

	if err := c.repo.SaveBlock(ctx, block, remaining); err != nil {
		return nil, fmt.Errorf("saving block %d: %w", block.Index, err)
	}
	c.blocks = append(c.blocks, *block)
	c.pending = remaining

	c.log.Info().
		Int64("index", block.Index).
		Int("transactions", block.TransactionCount).
		Str("hash", block.Hash).
		Dur("took", time.Since(start)).
		Msg("block mined")
	return block, nil
}

// CheckAutoMine mines once when auto-mining is on and the pool is full.
func (c *Chain) CheckAutoMine(ctx context.Context, validatorID string) (*domain.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	if !c.cfg.AutoMine || len(c.pending) < c.cfg.MaxTransactionsPerBlock {
		return nil, nil
	}
	return c.mineLocked(ctx, validatorID)
}

// Status summarizes the chain.
func (c *Chain) Status(ctx context.Context) (*domain.LedgerStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}

	total := len(c.pending)
	for i := range c.blocks {
		total += c.blocks[i].TransactionCount
	}
	last := c.blocks[len(c.blocks)-1]
	lastTime := last.Timestamp

	return &domain.LedgerStatus{
		ChainHeight:         int64(len(c.blocks)),
		LastBlockHash:       last.Hash,
		PendingTransactions: len(c.pending),
		TotalTransactions:   total,
		LastBlockTime:       &lastTime,
	}, nil
}

// Verify recomputes every transaction hash, block hash, Merkle root and back link.
func (c *Chain) Verify(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return err
	}

	target := strings.Repeat("0", c.cfg.Difficulty)
	for i := range c.blocks {
		b := &c.blocks[i]
		for j := range b.Transactions {
			tx := &b.Transactions[j]
			if tx.Hash != tx.ComputeHash() {
				return fmt.Errorf("%w: block %d transaction %s hash mismatch", ErrChainCorrupt, b.Index, tx.TxID)
			}
		}
		switch {
		case b.Hash != b.CalculateHash():
			return fmt.Errorf("%w: block %d hash mismatch", ErrChainCorrupt, b.Index)
		case !strings.HasPrefix(b.Hash, target):
			return fmt.Errorf("%w: block %d below difficulty", ErrChainCorrupt, b.Index)
		case b.MerkleRoot != domain.MerkleRoot(b.Transactions):
			return fmt.Errorf("%w: block %d merkle root mismatch", ErrChainCorrupt, b.Index)
		case i > 0 && b.PreviousHash != c.blocks[i-1].Hash:
			return fmt.Errorf("%w: block %d does not link to %d", ErrChainCorrupt, b.Index, c.blocks[i-1].Index)
		}
	}
	return nil
}
