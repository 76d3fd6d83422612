package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salescoach-ai/internal/app"
	"salescoach-ai/internal/config"
	"salescoach-ai/internal/tracing"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API manages sales training topics, answers questions grounded in their documents,
// generates learning paths and scores role-play transcripts.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Sales Coach API
//   description: |
//     Retrieval-augmented sales training API. Upload playbooks and call notes per topic,
//     ask questions answered only from that material, generate learning paths and get
//     feedback on practice role-plays.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

// version is set at build time.
var version = "dev"

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.OTelEndpoint,
		Protocol:    cfg.OTelProtocol,
		Insecure:    cfg.OTelInsecure,
		ServiceName: "salescoach-api",
		Version:     version,
	})
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr, "version", version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			slog.Error("API server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down cleanly", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracing shutdown failed", "error", err)
	}
}
