package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/gauge/internal/reardiff"
	"github.com/five82/gauge/internal/state"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that probes the API health
// endpoint at a fixed cadence, backing off while it is unreachable. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client *reardiff.Client, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			probe(ctx, store, client, log)

			wait := interval
			if failures := store.Snapshot().ConsecutiveFailures; failures > 0 {
				wait = calculateBackoff(failures, interval)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

func probe(ctx context.Context, store *state.Store, client *reardiff.Client, log zerolog.Logger) {
	health, err := client.Health(ctx)
	if err != nil {
		store.Update(false, err)
		log.Warn().Err(err).Msg("health probe failed")
		return
	}
	status := health.String("status")
	store.Update(status == "" || status == "ok" || status == "healthy", nil)
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
