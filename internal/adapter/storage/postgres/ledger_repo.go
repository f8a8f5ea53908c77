package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// LedgerRepository implements ports.LedgerRepository. Blocks and pending
// records are stored as JSONB so the hashed fields round-trip unchanged.
type LedgerRepository struct {
	pool Pool
	tx   ports.DBTransactor
}

// NewLedgerRepository creates a PostgreSQL-backed ledger repository.
func NewLedgerRepository(pool Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool, tx: NewTransactor(pool)}
}

// LoadChain returns the blocks in index order.
func (r *LedgerRepository) LoadChain(ctx context.Context) ([]domain.Block, error) {
	rows, err := r.pool.Query(ctx, `SELECT body FROM ledger_blocks ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer rows.Close()

	var chain []domain.Block
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		var b domain.Block
		if err := json.Unmarshal(body, &b); err != nil {
			return nil, fmt.Errorf("decoding block: %w", err)
		}
		chain = append(chain, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return chain, nil
}

// LoadPending returns the pending pool in submission order.
func (r *LedgerRepository) LoadPending(ctx context.Context) ([]domain.LedgerTransaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT body FROM ledger_pending ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()

	var pending []domain.LedgerTransaction
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan pending: %w", err)
		}
		var tx domain.LedgerTransaction
		if err := json.Unmarshal(body, &tx); err != nil {
			return nil, fmt.Errorf("decoding pending transaction: %w", err)
		}
		pending = append(pending, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending: %w", err)
	}
	return pending, nil
}

// SaveBlock appends block and replaces the pending pool with remaining in one transaction.
func (r *LedgerRepository) SaveBlock(ctx context.Context, block *domain.Block, remaining []domain.LedgerTransaction) error {
	body, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("encoding block: %w", err)
	}

	return InTx(ctx, r.tx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO ledger_blocks (idx, hash, previous_hash, block_time, body) VALUES ($1, $2, $3, $4, $5)`,
			block.Index, block.Hash, block.PreviousHash, block.Timestamp, body,
		)
		if err != nil {
			return fmt.Errorf("insert block %d: %w", block.Index, err)
		}
		return replacePending(ctx, tx, remaining)
	})
}

// SavePending replaces the pending pool.
func (r *LedgerRepository) SavePending(ctx context.Context, pending []domain.LedgerTransaction) error {
	return InTx(ctx, r.tx, func(tx pgx.Tx) error {
		return replacePending(ctx, tx, pending)
	})
}

func replacePending(ctx context.Context, tx pgx.Tx, pending []domain.LedgerTransaction) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ledger_pending`); err != nil {
		return fmt.Errorf("clear pending: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(pending))
	for i, p := range pending {
		body, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding pending transaction: %w", err)
		}
		rows = append(rows, []any{i, p.TxID, body})
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"ledger_pending"}, []string{"seq", "tx_id", "body"}, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy pending: %w", err)
	}
	if int(n) != len(pending) {
		return fmt.Errorf("copy pending: wrote %d of %d rows", n, len(pending))
	}
	return nil
}
