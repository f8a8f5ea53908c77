package file

import (
	"context"
	"path/filepath"
	"sync"

	"rangerblock/internal/core/domain"
)

// RateLimitFile holds { address: { dailyTotal, txCount, windowStart, minuteTxCount, minuteStart } }.
const RateLimitFile = "rate_limits.json"

// RateLimitRepository implements ports.RateLimitRepository on a single JSON file.
type RateLimitRepository struct {
	path string
	mu   sync.Mutex
}

// NewRateLimitRepository stores rate-limit windows under dir.
func NewRateLimitRepository(dir string) *RateLimitRepository {
	return &RateLimitRepository{path: filepath.Join(dir, RateLimitFile)}
}

// Load returns nil, nil for unknown addresses.
func (r *RateLimitRepository) Load(_ context.Context, address string) (*domain.RateLimitWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return nil, err
	}
	return all[address], nil
}

// Save replaces the window of one address and rewrites the file.
func (r *RateLimitRepository) Save(_ context.Context, address string, window *domain.RateLimitWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return err
	}
	all[address] = window
	return writeJSON(r.path, all)
}

func (r *RateLimitRepository) readAll() (map[string]*domain.RateLimitWindow, error) {
	all := make(map[string]*domain.RateLimitWindow)
	if _, err := readJSON(r.path, &all); err != nil {
		return nil, err
	}
	return all, nil
}
