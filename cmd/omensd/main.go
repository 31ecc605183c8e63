// Command omensd serves chart readings and daily lines over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/talgya/star-omens/internal/api"
	"github.com/talgya/star-omens/internal/astro"
	"github.com/talgya/star-omens/internal/config"
	"github.com/talgya/star-omens/internal/daily"
	"github.com/talgya/star-omens/internal/engine"
	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/metrics"
	"github.com/talgya/star-omens/internal/narrative"
	"github.com/talgya/star-omens/internal/persistence"
	"github.com/talgya/star-omens/internal/phi"
)

func main() {
	configPath := flag.String("config", "omens.yaml", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("star-omens starting", "listen", cfg.Server.ListenAddress)
	slog.Info("weight ladder",
		"psyche", fmt.Sprintf("%.5f", phi.Psyche),
		"matter", fmt.Sprintf("%.5f", phi.Matter),
		"being", fmt.Sprintf("%.5f", phi.Being),
		"nous", fmt.Sprintf("%.5f", phi.Nous),
	)

	// ── Narrative catalog ────────────────────────────────────────────
	bank := narrative.DefaultBank()
	if cfg.Narrative.TemplatesFile != "" {
		bank, err = narrative.LoadBank(cfg.Narrative.TemplatesFile)
		if err != nil {
			slog.Error("failed to load templates", "path", cfg.Narrative.TemplatesFile, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("omen catalog loaded", "templates", bank.Len(), "general", len(bank.GeneralIDs()))

	// ── Ephemeris ────────────────────────────────────────────────────
	positions := ephemeris.NewCached(ephemeris.NewKepler(), cfg.Ephemeris.CacheResolution, cfg.Ephemeris.CacheTTL)
	m := metrics.New()
	m.TrackCacheSize(positions.Len)

	opts := []engine.Option{engine.WithObserver(m)}

	// ── Database ─────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Storage.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			slog.Error("failed to create data dir", "error", err)
			os.Exit(1)
		}
		db, err = persistence.Open(cfg.Storage.Path)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.Storage.Path)
		opts = append(opts, engine.WithHistory(db), engine.WithChartStore(db))
	} else {
		slog.Warn("storage.path not set, omen history and chart cache disabled")
	}

	eng := engine.New(astro.NewCalculator(positions), narrative.NewSelector(bank), daily.NewDefault(), opts...)

	// ── HTTP API ─────────────────────────────────────────────────────
	if cfg.Server.AdminKey == "" {
		slog.Warn("OMENS_ADMIN_KEY not set, history endpoint will be disabled")
	}
	limiter := api.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Close()

	apiServer := &api.Server{
		Engine:      eng,
		DB:          db,
		Metrics:     m,
		Limiter:     limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		AdminKey:    cfg.Server.AdminKey,
		Templates:   bank.Len(),
		CacheSize:   positions.Len,
	}
	srv := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      apiServer.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API starting", "addr", srv.Addr, "admin_auth", cfg.Server.AdminKey != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// ── Run until signalled ──────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		slog.Error("HTTP server error", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("stopped")
}
