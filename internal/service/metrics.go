package service

import (
	"context"

	"rangerblock/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the node's Prometheus collectors.
type Metrics struct {
	TransfersAccepted   *prometheus.CounterVec
	TransfersRejected   *prometheus.CounterVec
	BlocksApplied       prometheus.Counter
	ChainHeight         prometheus.Gauge
	PendingTransactions prometheus.Gauge
	SecurityEvents      *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TransfersAccepted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rangerblock",
			Name:      "transfers_accepted_total",
			Help:      "Transfers admitted to the pending pool.",
		}, []string{"coin"}),
		TransfersRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rangerblock",
			Name:      "transfers_rejected_total",
			Help:      "Transfers rejected by validation, by first rejection code.",
		}, []string{"reason"}),
		BlocksApplied: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rangerblock",
			Name:      "blocks_applied_total",
			Help:      "Blocks replayed into the balance table.",
		}),
		ChainHeight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "rangerblock",
			Name:      "chain_height",
			Help:      "Number of blocks applied.",
		}),
		PendingTransactions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "rangerblock",
			Name:      "pending_transactions",
			Help:      "Ledger records waiting to be mined.",
		}),
		SecurityEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rangerblock",
			Name:      "security_events_total",
			Help:      "Security events recorded, by type.",
		}, []string{"type"}),
	}
}

// NewNopMetrics returns collectors that are not registered anywhere.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) transferRejected(v *domain.ValidationResult) {
	reason := "unknown"
	if codes := v.Codes(); len(codes) > 0 {
		reason = string(codes[0])
	}
	m.TransfersRejected.WithLabelValues(reason).Inc()
}

// SecurityEventSink counts security events. It satisfies ports.SecurityEventRepository.
type SecurityEventSink struct {
	m *Metrics
}

// SecurityEventSink returns a sink that feeds SecurityEvents.
func (m *Metrics) SecurityEventSink() *SecurityEventSink {
	return &SecurityEventSink{m: m}
}

// Append increments the counter for the event's type.
func (s *SecurityEventSink) Append(_ context.Context, event *domain.SecurityEvent) error {
	s.m.SecurityEvents.WithLabelValues(string(event.Type)).Inc()
	return nil
}
