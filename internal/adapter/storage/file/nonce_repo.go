package file

import (
	"context"
	"path/filepath"
	"sync"

	"rangerblock/internal/core/domain"
)

// NonceFile holds { address: { current, used[] } }.
const NonceFile = "nonces.json"

// NonceRepository implements ports.NonceRepository on a single JSON file.
type NonceRepository struct {
	path string
	mu   sync.Mutex
}

// NewNonceRepository stores nonce history under dir.
func NewNonceRepository(dir string) *NonceRepository {
	return &NonceRepository{path: filepath.Join(dir, NonceFile)}
}

// Load returns an empty history for unknown addresses.
func (r *NonceRepository) Load(_ context.Context, address string) (*domain.NonceHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return nil, err
	}
	h, ok := all[address]
	if !ok {
		return &domain.NonceHistory{Used: []uint64{}}, nil
	}
	return h, nil
}

// Save replaces the history of one address and rewrites the file.
func (r *NonceRepository) Save(_ context.Context, address string, history *domain.NonceHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return err
	}
	all[address] = history
	return writeJSON(r.path, all)
}

func (r *NonceRepository) readAll() (map[string]*domain.NonceHistory, error) {
	all := make(map[string]*domain.NonceHistory)
	if _, err := readJSON(r.path, &all); err != nil {
		return nil, err
	}
	return all, nil
}
