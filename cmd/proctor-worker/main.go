package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/proctor/config"
	"github.com/bnema/proctor/internal/adapter/downloader"
	"github.com/bnema/proctor/internal/adapter/processor/ffmpeg"
	"github.com/bnema/proctor/internal/adapter/queue/sqlite"
	"github.com/bnema/proctor/internal/adapter/storage/disk"
	"github.com/bnema/proctor/internal/infrastructure/logger"
	"github.com/bnema/proctor/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Int("workers", cfg.WorkerCount).Str("processed_dir", cfg.ProcessedDir).Msg("starting proctor worker")

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := service.NewWorkerPool(
		sqlite.NewJobQueue(queueStore),
		fileStore,
		downloader.New(cfg.DownloadTimeout),
		ffmpeg.NewProcessor(),
		cfg.DownloadDir,
		cfg.WorkerCount,
		log,
	)
	pool.Start(ctx)

	<-ctx.Done()
	log.Info().Msg("signal received, stopping workers; interrupted jobs resume on restart")
	pool.Wait()
	log.Info().Msg("shutdown complete")
}
