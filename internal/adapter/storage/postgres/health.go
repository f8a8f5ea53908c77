package postgres

import (
	"context"
	"fmt"
	"time"
)

const ledgerProbeTimeout = 2 * time.Second

// LedgerHealth reports whether the ledger tables can be read.
// A reachable server with a missing schema counts as unhealthy.
type LedgerHealth struct {
	pool    Pool
	timeout time.Duration
}

func NewHealthCheck(pool Pool) *LedgerHealth {
	return &LedgerHealth{pool: pool, timeout: ledgerProbeTimeout}
}

func (h *LedgerHealth) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	for _, table := range []string{"ledger_blocks", "ledger_pending"} {
		if _, err := h.pool.Exec(ctx, "SELECT 1 FROM "+table+" LIMIT 1"); err != nil {
			return fmt.Errorf("reading %s: %w", table, err)
		}
	}
	return nil
}

func (h *LedgerHealth) Name() string {
	return "postgres_ledger"
}
