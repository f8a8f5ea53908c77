package main

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	httpHandler "rangerblock/internal/adapter/http/handler"
	"rangerblock/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
)

func runServe(ctx context.Context, n *node, _ []string, _ io.Writer) error {
	if err := n.startLedger(ctx); err != nil {
		return err
	}
	log := n.log

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Identity:       n.identity,
		Wallet:         n.wallet,
		Bridge:         n.bridge,
		Transfers:      n.transfers,
		Audit:          n.audit,
		Limiter:        n.apiLimiter(),
		HealthCheckers: n.healthCheckers,
		Gatherer:       n.gatherer(),
		MetricsPath:    n.cfg.Metrics.Path,
		Mode:           n.cfg.Server.Mode,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              n.cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go n.logEvents(ctx)
	if n.cfg.Bridge.MineInterval > 0 {
		go n.bridge.RunMiner(ctx, n.cfg.Bridge.MineInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("address", n.wallet.Address()).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), n.cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

// gatherer exposes the node registry unless metrics are disabled.
func (n *node) gatherer() prometheus.Gatherer {
	if !n.cfg.Metrics.Enabled {
		return nil
	}
	return n.registry
}

// logEvents mirrors bus events into the log until ctx ends.
func (n *node) logEvents(ctx context.Context) {
	ch, unsubscribe := n.events.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			entry := n.log.Debug().Str("event", string(e.Kind)).Time("at", e.At)
			switch {
			case e.Receipt != nil:
				entry = entry.Str("tx_id", e.Receipt.TransactionID)
			case e.Block != nil:
				entry = entry.Int64("block", e.Block.Index)
			case e.Contract != nil:
				entry = entry.Str("contract_id", e.Contract.ContractID)
			}
			if e.Kind == domain.EventTransferRejected {
				entry = entry.Strs("codes", rejectionCodes(e.Validation))
			}
			entry.Msg("node event")
		}
	}
}

func rejectionCodes(v *domain.ValidationResult) []string {
	if v == nil {
		return nil
	}
	rc := v.Codes()
	codes := make([]string, 0, len(rc))
	for _, c := range rc {
		codes = append(codes, string(c))
	}
	return codes
}

// burstWindow is how long a full burst takes to refill at rps.
func burstWindow(rps float64, burst int) time.Duration {
	if rps <= 0 || burst <= 0 {
		return time.Second
	}
	secs := math.Ceil(float64(burst) / rps)
	return time.Duration(max(secs, 1)) * time.Second
}
