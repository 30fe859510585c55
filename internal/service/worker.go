package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/proctor/internal/domain"
	"github.com/bnema/proctor/internal/infrastructure/logger"
	"github.com/bnema/proctor/internal/port"
)

const (
	idlePollInterval  = 500 * time.Millisecond
	errorPollInterval = 2 * time.Second
)

// WorkerPool consumes jobs from the queue. Each job runs the full pipeline:
// download the source, render the reviewed copy, publish metadata then
// video into the file store, and mark the job succeeded. Publishing happens
// before the status flips, so a succeeded job always references complete
// files.
type WorkerPool struct {
	queue       port.JobQueue
	store       port.FileStore
	downloader  port.Downloader
	processor   port.Processor
	downloadDir string
	workers     int
	log         zerolog.Logger

	wg sync.WaitGroup
}

func NewWorkerPool(
	queue port.JobQueue,
	store port.FileStore,
	downloader port.Downloader,
	processor port.Processor,
	downloadDir string,
	workers int,
	log zerolog.Logger,
) *WorkerPool {
	return &WorkerPool{
		queue:       queue,
		store:       store,
		downloader:  downloader,
		processor:   processor,
		downloadDir: downloadDir,
		workers:     workers,
		log:         log,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	// Jobs left running by a previous crash go back to pending.
	if err := wp.queue.ResetStalled(); err != nil {
		wp.log.Error().Err(err).Msg("failed to reset stalled jobs")
	}

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.runWorker(ctx, i)
	}
	wp.log.Info().Int("workers", wp.workers).Msg("worker pool started")
}

// Wait blocks until all workers have exited after their context is canceled.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) runWorker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			wp.log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
		}

		job, err := wp.queue.Claim()
		if err != nil {
			wp.log.Error().Int("worker", id).Err(err).Msg("failed to claim job")
			sleep(ctx, errorPollInterval)
			continue
		}

		if job == nil {
			sleep(ctx, idlePollInterval)
			continue
		}

		wp.log.Info().
			Int("worker", id).
			Str("job_id", job.ID).
			Str("video_url", logger.SanitizeForLog(job.VideoURL)).
			Msg("processing job")
		wp.processJob(ctx, job)
	}
}

func (wp *WorkerPool) processJob(ctx context.Context, job *domain.Job) {
	videoID, err := wp.runPipeline(ctx, job)
	if err != nil {
		// A shutdown mid-pipeline is not a job failure. The row stays
		// running and ResetStalled re-pends it on the next start, same as
		// after a crash.
		if ctx.Err() != nil {
			wp.log.Info().Str("job_id", job.ID).Msg("job interrupted by shutdown, left for retry")
			return
		}
		wp.log.Error().Str("job_id", job.ID).Err(err).Msg("job failed")
		if failErr := wp.queue.Fail(job.ID, err.Error()); failErr != nil {
			wp.log.Error().Str("job_id", job.ID).Err(failErr).Msg("failed to mark job failed")
		}
		return
	}

	if err := wp.queue.Complete(job.ID, videoID); err != nil {
		wp.log.Error().Str("job_id", job.ID).Err(err).Msg("failed to mark job succeeded")
		return
	}
	wp.log.Info().Str("job_id", job.ID).Str("video_id", videoID).Msg("job completed")
}

func (wp *WorkerPool) runPipeline(ctx context.Context, job *domain.Job) (string, error) {
	videoID := domain.NewVideoID()

	srcPath, err := wp.downloader.Download(ctx, job.VideoURL, wp.downloadDir, videoID)
	if err != nil {
		return "", fmt.Errorf("download video: %w", err)
	}
	defer os.Remove(srcPath) //nolint:errcheck

	workDir, err := os.MkdirTemp("", "proctor-work-")
	if err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir) //nolint:errcheck

	result, err := wp.processor.Process(ctx, srcPath, workDir, videoID)
	if err != nil {
		return "", fmt.Errorf("process video: %w", err)
	}

	result.Report.SourceURL = job.VideoURL
	data, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	// Metadata first: a visible video record must always have its report.
	if err := wp.store.PublishMetadata(videoID, data); err != nil {
		return "", fmt.Errorf("publish metadata: %w", err)
	}
	if err := wp.store.PublishVideo(videoID, result.VideoPath); err != nil {
		return "", fmt.Errorf("publish video: %w", err)
	}

	return videoID, nil
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
