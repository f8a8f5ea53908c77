package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"rangerblock/internal/core/domain"
)

// SecurityEventRepository implements ports.SecurityEventRepository.
type SecurityEventRepository struct {
	pool Pool
}

// NewSecurityEventRepository creates a PostgreSQL-backed security event sink.
func NewSecurityEventRepository(pool Pool) *SecurityEventRepository {
	return &SecurityEventRepository{pool: pool}
}

// Append inserts one event.
func (r *SecurityEventRepository) Append(ctx context.Context, event *domain.SecurityEvent) error {
	details := event.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encoding security event: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO security_events (id, type, details, created_at) VALUES ($1, $2, $3, $4)`,
		event.ID, string(event.Type), payload, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

