package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/civicdash/internal/backend"
	"github.com/JonMunkholm/civicdash/internal/config"
	"github.com/JonMunkholm/civicdash/internal/core"
	_ "github.com/JonMunkholm/civicdash/internal/core/pages" // Register all pages
	"github.com/JonMunkholm/civicdash/internal/logging"
	"github.com/JonMunkholm/civicdash/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("configuration loaded", "config", cfg.String())

	logger.Info("pages registered",
		"pages", core.PageCount(),
		"views", core.ViewCount(),
	)
	for _, def := range core.Pages() {
		logger.Debug("page", "key", def.Info.Key, "resources", len(def.Resources), "views", len(core.ViewsForPage(def.Info.Key)))
	}

	client := backend.New(cfg.Backend, logger)

	// Report backend reachability without blocking startup on it.
	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	if err := client.Ping(pingCtx, cfg.Backend.BaseURL); err != nil {
		logger.Warn("backend not reachable", "base_url", cfg.Backend.BaseURL, "code", core.MapError(err).Code, "error", err)
	} else {
		logger.Info("backend reachable", "base_url", cfg.Backend.BaseURL)
	}
	cancelPing()

	server := web.NewServer(cfg, client, logger)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		start := time.Now()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
			return
		}
		logger.Info("shutdown complete", "duration", time.Since(start))
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
}
