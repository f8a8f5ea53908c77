package file

import (
	"context"
	"path/filepath"
	"sync"

	"rangerblock/internal/core/domain"
)

const (
	// ChainFile holds the ordered list of blocks.
	ChainFile = "chain.json"
	// PendingFile holds the pending transaction pool.
	PendingFile = "pending.json"
)

// LedgerRepository implements ports.LedgerRepository with two JSON files.
type LedgerRepository struct {
	dir string
	mu  sync.Mutex
}

// NewLedgerRepository stores the ledger under dir.
func NewLedgerRepository(dir string) *LedgerRepository {
	return &LedgerRepository{dir: dir}
}

// LoadChain returns the blocks in index order, or none on first run.
func (r *LedgerRepository) LoadChain(_ context.Context) ([]domain.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chain []domain.Block
	if _, err := readJSON(filepath.Join(r.dir, ChainFile), &chain); err != nil {
		return nil, err
	}
	return chain, nil
}

// LoadPending returns the pending pool.
func (r *LedgerRepository) LoadPending(_ context.Context) ([]domain.LedgerTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []domain.LedgerTransaction
	if _, err := readJSON(filepath.Join(r.dir, PendingFile), &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// SaveBlock appends block to the chain, then replaces the pending pool with remaining.
func (r *LedgerRepository) SaveBlock(_ context.Context, block *domain.Block, remaining []domain.LedgerTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chainPath := filepath.Join(r.dir, ChainFile)
	var chain []domain.Block
	if _, err := readJSON(chainPath, &chain); err != nil {
		return err
	}
	chain = append(chain, *block)
	if err := writeJSON(chainPath, chain); err != nil {
		return err
	}
	return r.writePending(remaining)
}

// SavePending replaces the pending pool.
func (r *LedgerRepository) SavePending(_ context.Context, pending []domain.LedgerTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writePending(pending)
}

func (r *LedgerRepository) writePending(pending []domain.LedgerTransaction) error {
	if pending == nil {
		pending = []domain.LedgerTransaction{}
	}
	return writeJSON(filepath.Join(r.dir, PendingFile), pending)
}
