package port

import "context"

// Downloader fetches a source video into destDir and returns the local path.
type Downloader interface {
	Download(ctx context.Context, videoURL, destDir, videoID string) (string, error)
}
