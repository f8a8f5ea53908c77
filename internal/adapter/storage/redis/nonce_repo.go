package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rangerblock/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ErrNonceRegression is returned when a save would move an address's nonce backwards.
var ErrNonceRegression = errors.New("nonce history would move backwards")

// NonceRepository implements ports.NonceRepository on Redis, one JSON value per address.
// Nodes sharing a Redis instance see each other's nonces.
type NonceRepository struct {
	client *goredis.Client
	prefix string
}

// NewNonceRepository creates a Redis-backed nonce repository.
func NewNonceRepository(client *goredis.Client, keyPrefix string) *NonceRepository {
	return &NonceRepository{
		client: client,
		prefix: keyPrefix + "nonce:",
	}
}

// Load returns an empty history for unknown addresses.
func (r *NonceRepository) Load(ctx context.Context, address string) (*domain.NonceHistory, error) {
	h, err := loadNonces(ctx, r.client, r.prefix+address)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return &domain.NonceHistory{Used: []uint64{}}, nil
	}
	return h, nil
}

// Save replaces the history of one address. The write is rejected with
// ErrNonceRegression if another writer already stored a higher nonce.
func (r *NonceRepository) Save(ctx context.Context, address string, history *domain.NonceHistory) error {
	key := r.prefix + address
	b, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding nonce history: %w", err)
	}

	err = r.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := loadNonces(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != nil && current.Current > history.Current {
			return fmt.Errorf("%w: stored %d, saving %d", ErrNonceRegression, current.Current, history.Current)
		}
		_, err = tx.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrNonceRegression) {
			return err
		}
		return fmt.Errorf("redis nonce save: %w", err)
	}
	return nil
}

func loadNonces(ctx context.Context, c goredis.Cmdable, key string) (*domain.NonceHistory, error) {
	b, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis nonce get: %w", err)
	}
	var h domain.NonceHistory
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, fmt.Errorf("decoding nonce history: %w", err)
	}
	return &h, nil
}
