package domain

import "github.com/google/uuid"

// NewVideoID returns a fresh identifier for a video record. The worker
// assigns one when it claims a job; the id becomes the job result on success.
func NewVideoID() string {
	return uuid.NewString()
}

// VideoFilename returns the on-disk name of a processed video.
func VideoFilename(videoID string) string {
	return "processed_" + videoID + ".mp4"
}

// MetadataFilename returns the on-disk name of a video's sidecar report.
func MetadataFilename(videoID string) string {
	return "processed_" + videoID + ".json"
}
