package service

import (
	"context"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"

	"github.com/rs/zerolog"
)

type securityEventService struct {
	sinks []ports.SecurityEventRepository
	log   zerolog.Logger
	now   func() time.Time
}

// NewSecurityEventService creates a security auditor.
// With no sinks, events are only written to the logger.
func NewSecurityEventService(log zerolog.Logger, sinks ...ports.SecurityEventRepository) ports.SecurityAuditor {
	return &securityEventService{sinks: sinks, log: log, now: time.Now}
}

// Record logs the event and appends it to every sink. Sink failures are logged, never returned.
func (s *securityEventService) Record(ctx context.Context, t domain.SecurityEventType, details map[string]any) {
	event := domain.NewSecurityEvent(t, details, s.now())

	s.log.Warn().
		Str("event", string(event.Type)).
		Str("event_id", event.ID.String()).
		Fields(details).
		Msg("security event")

	for _, sink := range s.sinks {
		if err := sink.Append(ctx, event); err != nil {
			s.log.Error().Err(err).Str("event", string(event.Type)).Msg("failed to persist security event")
		}
	}
}
