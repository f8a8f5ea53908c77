package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rangerblock/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// WindowRepository implements ports.RateLimitRepository on Redis.
// Windows of idle addresses expire after ttl.
type WindowRepository struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewWindowRepository creates a Redis-backed rate-limit window repository.
func NewWindowRepository(client *goredis.Client, keyPrefix string, ttl time.Duration) *WindowRepository {
	return &WindowRepository{
		client: client,
		prefix: keyPrefix + "ratewindow:",
		ttl:    ttl,
	}
}

// Load returns nil, nil for unknown addresses.
func (r *WindowRepository) Load(ctx context.Context, address string) (*domain.RateLimitWindow, error) {
	b, err := r.client.Get(ctx, r.prefix+address).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis rate window get: %w", err)
	}
	var w domain.RateLimitWindow
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decoding rate window: %w", err)
	}
	return &w, nil
}

// Save replaces the window of one address and refreshes its expiry.
func (r *WindowRepository) Save(ctx context.Context, address string, window *domain.RateLimitWindow) error {
	b, err := json.Marshal(window)
	if err != nil {
		return fmt.Errorf("encoding rate window: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+address, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis rate window set: %w", err)
	}
	return nil
}
