// Package app wires configuration, the API client, the session cache, and
// the health poller together and hands them to the UI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/gauge/internal/cache"
	"github.com/five82/gauge/internal/config"
	"github.com/five82/gauge/internal/logging"
	"github.com/five82/gauge/internal/prefs"
	"github.com/five82/gauge/internal/reardiff"
	"github.com/five82/gauge/internal/state"
	"github.com/five82/gauge/internal/ui"
)

// Options configure the gauge application.
type Options struct {
	PrefsPath      string // empty uses default ~/.config/gauge/prefs.toml
	PollEvery      int    // seconds; zero uses the config default
	TimeoutSeconds int    // overrides GAUGE_API_TIMEOUT when positive
}

// Run boots the dashboard until the context is cancelled. Configuration
// errors are returned before any network traffic happens; everything after
// startup is rendered in-session rather than returned.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}
	if opts.PollEvery > 0 {
		cfg.PollEvery = time.Duration(opts.PollEvery) * time.Second
	}

	log, closeLog := logging.Open(cfg.LogPath)
	defer func() { _ = closeLog() }()
	log.Info().Str("base_url", cfg.BaseURL()).Msg("session start")

	client, err := reardiff.NewClient(cfg.BaseURL(), cfg.Timeout, log)
	if err != nil {
		return fmt.Errorf("init rear-diff client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	store := &state.Store{}
	responses := cache.New()

	StartPoller(ctx, store, client, cfg.PollEvery, log)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Cache:     responses,
		Store:     store,
		Log:       log,
		ThemeName: userPrefs.Theme,
		PageSize:  userPrefs.PageSize,
		PrefsPath: opts.PrefsPath,
		PollTick:  cfg.PollEvery,
	}
	return ui.Run(uiOpts)
}
