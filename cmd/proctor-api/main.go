package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/proctor/config"
	HTTPAdapter "github.com/bnema/proctor/internal/adapter/http"
	"github.com/bnema/proctor/internal/adapter/queue/sqlite"
	"github.com/bnema/proctor/internal/adapter/storage/disk"
	"github.com/bnema/proctor/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Str("addr", cfg.Addr()).Str("processed_dir", cfg.ProcessedDir).Msg("starting proctor api")

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}

	queueStore, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open job store")
	}
	defer func() { _ = queueStore.Close() }()

	fileStore, err := disk.NewStore(cfg.ProcessedDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open file store")
	}

	handlers := HTTPAdapter.NewHandlers(sqlite.NewJobQueue(queueStore), fileStore, cfg.PublicBaseURL, log)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      HTTPAdapter.NewServer(handlers, log),
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown error")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
}
