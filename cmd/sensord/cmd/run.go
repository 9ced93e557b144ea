package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/probegrid/sensord/internal/agent"
	"github.com/probegrid/sensord/internal/collector"
	"github.com/probegrid/sensord/internal/device"
	"github.com/probegrid/sensord/internal/device/hub"
	"github.com/probegrid/sensord/internal/exposition"
	"github.com/probegrid/sensord/internal/history"
	"github.com/probegrid/sensord/internal/store"
)

// drainTimeout is the maximum time for graceful shutdown.
const drainTimeout = 10 * time.Second

func runDaemon(_ *cobra.Command, args []string) error {
	debugDump := len(args) == 1 && args[0] == "debug"

	// 1. Parse config and apply CLI flag overrides.
	cfg, err := agent.ParseConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("sensord: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if listen != "" {
		cfg.Exposition.Listen = listen
	}
	if hubURL != "" {
		cfg.Hub.BaseURL = hubURL
	}

	// 2. Set up structured logger.
	logger := setupLogger(cfg.LogLevel)

	logger.Info("starting sensord",
		"version", buildVersion,
		"hub", cfg.Hub.BaseURL,
		"listen", cfg.Exposition.Listen,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 3. Register the device hub. Failure is fatal: without a hub there is
	// no device source, so this is never retried.
	source, err := hub.NewClient(cfg.Hub, logger)
	if err != nil {
		return fmt.Errorf("sensord: create hub client: %w", err)
	}
	if err := source.Register(ctx); err != nil {
		return fmt.Errorf("sensord: %w", err)
	}

	// 4. Optional one-shot discovery dump before entering the loop.
	if debugDump {
		if err := device.Dump(ctx, os.Stdout, source); err != nil {
			logger.Warn("discovery dump failed", "error", err)
		}
	}

	// 5. Wire store, collector, scheduler, exposition server.
	st := store.New()
	coll := collector.New(source, st, logger)
	sched := collector.NewScheduler(cfg.Collector, coll, logger)
	server := exposition.NewServer(cfg.Exposition, st, logger)

	// 6. Optional cycle history persistence.
	if cfg.History.Enabled {
		recorder, err := history.Open(cfg.History.Path, logger)
		if err != nil {
			return fmt.Errorf("sensord: %w", err)
		}
		defer recorder.Close()

		sched.SetOnCycle(func(o collector.Outcome) {
			if o.Err != nil {
				return
			}
			if err := recorder.RecordSnapshot(ctx, time.Now(), st.Snapshot()); err != nil {
				logger.Warn("history persist failed", "error", err)
			}
		})
	}

	var wg sync.WaitGroup

	// 7. Start the collection loop, then hold the exposition server until
	// the initial cycle has populated the store.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = sched.Run(ctx)
	}()

	select {
	case <-sched.FirstCycleDone():
	case <-ctx.Done():
	}

	// 8. Start the exposition server.
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("exposition server stopped", "error", err)
			stop()
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down", "reason", ctx.Err())

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// All goroutines exited cleanly.
	case <-time.After(drainTimeout):
		logger.Warn("drain timeout exceeded, forcing exit")
	}

	logger.Info("sensord stopped")
	return nil
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
