package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const heartbeatTTL = time.Minute

// StateHealth checks that the node can still write its nonce and window
// state by refreshing a heartbeat key under the configured prefix.
type StateHealth struct {
	client *goredis.Client
	key    string
}

func NewHealthCheck(client *goredis.Client, keyPrefix string) *StateHealth {
	return &StateHealth{client: client, key: keyPrefix + "health"}
}

func (h *StateHealth) Ping(ctx context.Context) error {
	if err := h.client.Set(ctx, h.key, time.Now().Unix(), heartbeatTTL).Err(); err != nil {
		return fmt.Errorf("writing heartbeat: %w", err)
	}
	return nil
}

func (h *StateHealth) Name() string {
	return "redis_state"
}
