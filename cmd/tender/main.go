package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeSquared-Agency/tender/internal/api"
	"github.com/MikeSquared-Agency/tender/internal/assistant"
	"github.com/MikeSquared-Agency/tender/internal/blob"
	"github.com/MikeSquared-Agency/tender/internal/bus"
	"github.com/MikeSquared-Agency/tender/internal/config"
	"github.com/MikeSquared-Agency/tender/internal/graph"
	"github.com/MikeSquared-Agency/tender/internal/orchestrator"
	"github.com/MikeSquared-Agency/tender/internal/store"
	"github.com/MikeSquared-Agency/tender/internal/worker"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("tender starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Job ledger
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	// Document drive
	drive := graph.NewClient(ctx, cfg.GraphClientID, cfg.GraphClientSecret, cfg.GraphTenantID, cfg.GraphDriveID)

	// Blob archive
	archive, err := blob.NewStore(cfg.BlobAccountName, cfg.BlobContainerName)
	if err != nil {
		slog.Error("failed to create blob store", "error", err)
		os.Exit(1)
	}
	slog.Info("blob archive ready", "account", cfg.BlobAccountName, "container", cfg.BlobContainerName)

	// Assistant + conversation orchestrator
	ai := assistant.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIEndpoint, cfg.APIVersion, cfg.AssistantID)
	conv := orchestrator.New(ai, cfg.RunPollTimeout, slog.Default())
	slog.Info("assistant client ready", "assistant_id", cfg.AssistantID)

	// Bus
	events, err := bus.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer events.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Worker — the proposal pipeline
	w := worker.New(drive, archive, db, conv, events, cfg.ChunkSize, slog.Default())

	if err := events.Subscribe(bus.SubjectProposalRequested, w.HandleProposalRequested); err != nil {
		slog.Error("failed to subscribe to proposal requests", "error", err)
		os.Exit(1)
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, db, events, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("tender ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("tender stopped")
}

func setupLogging(level string) {
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
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
