package port

import (
	"io"
	"time"
)

// File is an open handle on a stored artifact, seekable so the HTTP layer
// can serve range requests against it.
type File interface {
	io.ReadSeekCloser
	Name() string
	Size() int64
	ModTime() time.Time
}

// FileStore holds published video records. The API only reads; the worker
// publishes. Publish methods must be atomic: a record is either fully
// visible or absent.
type FileStore interface {
	Video(videoID string) (File, error)
	Metadata(videoID string) (File, error)
	ReadMetadata(videoID string) ([]byte, error)
	Exists(videoID string) bool
	PublishVideo(videoID, srcPath string) error
	PublishMetadata(videoID string, data []byte) error
}
