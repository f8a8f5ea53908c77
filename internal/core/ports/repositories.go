package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"rangerblock/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BlobStore is the owner-only directory holding identity and wallet files.
// Writes replace the whole file atomically.
type BlobStore interface {
	Dir() string
	Ensure() error
	// Read returns nil, nil when the file does not exist.
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Exists(name string) bool
	Remove(name string) error
}

// NonceRepository persists per-address nonce history.
type NonceRepository interface {
	// Load returns an empty history for unknown addresses.
	Load(ctx context.Context, address string) (*domain.NonceHistory, error)
	Save(ctx context.Context, address string, history *domain.NonceHistory) error
}

// RateLimitRepository persists per-address rate-limit windows.
type RateLimitRepository interface {
	// Load returns nil, nil for unknown addresses.
	Load(ctx context.Context, address string) (*domain.RateLimitWindow, error)
	Save(ctx context.Context, address string, window *domain.RateLimitWindow) error
}

// SecurityEventRepository is an append-only sink for security events.
type SecurityEventRepository interface {
	Append(ctx context.Context, event *domain.SecurityEvent) error
}

// LedgerRepository persists the reference ledger's chain and pending pool.
type LedgerRepository interface {
	LoadChain(ctx context.Context) ([]domain.Block, error)
	LoadPending(ctx context.Context) ([]domain.LedgerTransaction, error)
	// SaveBlock appends block and replaces the pending pool with remaining.
	SaveBlock(ctx context.Context, block *domain.Block, remaining []domain.LedgerTransaction) error
	SavePending(ctx context.Context, pending []domain.LedgerTransaction) error
}

// ContractRepository stores transfer contracts by id.
type ContractRepository interface {
	Save(ctx context.Context, contract *domain.TransferContract) error
	// Get returns nil, nil when the contract does not exist.
	Get(ctx context.Context, contractID string) (*domain.TransferContract, error)
	List(ctx context.Context) ([]domain.TransferContract, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
