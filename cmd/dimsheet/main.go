package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/dimsheet/dimsheet/internal/config"
	"github.com/dimsheet/dimsheet/internal/extract"
	"github.com/dimsheet/dimsheet/internal/logging"
	"github.com/dimsheet/dimsheet/internal/store"
	"github.com/dimsheet/dimsheet/internal/watch"
	"github.com/dimsheet/dimsheet/internal/web"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger := logging.New(cfg, version)
	slog.SetDefault(logger)

	if cfg.IsDebug() {
		logger.Debug("starting with configuration", "config", cfg.String())
	}

	var history *store.Store
	if cfg.HistoryEnabled() {
		history, err = store.Open(cfg.DatabasePath)
		if err != nil {
			logger.Error("failed to open extraction history", "path", cfg.DatabasePath, "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := history.Close(); err != nil {
				logger.Error("failed to close extraction history", "error", err)
			}
		}()
		logger.Info("extraction history enabled", "path", cfg.DatabasePath)
	} else {
		logger.Info("extraction history disabled")
	}

	extractor := extract.NewService(cfg.MaxFileSize, cfg.DefaultTolerance)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		server := web.NewServer(cfg, logger, extractor, history)
		runUntilSignal(ctx, cancel, logger, server.Run)
		return
	}

	watcher, err := watch.New(cfg, logger, extractor, history)
	if err != nil {
		logger.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}
	runUntilSignal(ctx, cancel, logger, watcher.Run)
}

// runUntilSignal runs the given mode until a shutdown signal arrives or
// the mode fails
func runUntilSignal(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger,
	run func(context.Context) error,
) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	select {
	case sig := <-signalCh:
		logger.Info("shutting down", "signal", sig.String())
		cancel()

		if err := <-errCh; err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}

	case err := <-errCh:
		if err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("stopped")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("dimsheet\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
