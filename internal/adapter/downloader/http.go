package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/bnema/proctor/internal/port"
)

const maxAttempts = 3

// HTTPDownloader fetches source videos over plain HTTP. Transient failures
// (network errors, 5xx, 429) are retried with exponential backoff; other
// status codes fail the job immediately.
type HTTPDownloader struct {
	client    *http.Client
	baseDelay time.Duration
}

func New(timeout time.Duration) *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{
			Timeout: timeout,
		},
		baseDelay: 500 * time.Millisecond,
	}
}

func (d *HTTPDownloader) Download(ctx context.Context, videoURL, destDir, videoID string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	dest := filepath.Join(destDir, videoID+".mp4")

	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(d.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return d.fetch(ctx, videoURL, dest)
	})
	if err != nil {
		return "", fmt.Errorf("download %s: %w", videoURL, err)
	}
	return dest, nil
}

func (d *HTTPDownloader) fetch(ctx context.Context, videoURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(err)
		}
		return err
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return retry.RetryableError(err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

var _ port.Downloader = (*HTTPDownloader)(nil)
