package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/proctor/internal/domain"
	"github.com/bnema/proctor/internal/port"
)

// Store is the processed-output directory. The worker publishes records
// here; the API reads them. Publishing writes a .tmp sibling and renames it
// into place, so readers never observe a half-written file.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("processed directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create processed directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

type file struct {
	*os.File
	info os.FileInfo
}

func (f *file) Name() string       { return f.info.Name() }
func (f *file) Size() int64        { return f.info.Size() }
func (f *file) ModTime() time.Time { return f.info.ModTime() }

func (s *Store) Video(videoID string) (port.File, error) {
	return s.open(videoID, domain.VideoFilename)
}

func (s *Store) Metadata(videoID string) (port.File, error) {
	return s.open(videoID, domain.MetadataFilename)
}

func (s *Store) ReadMetadata(videoID string) ([]byte, error) {
	if err := validateID(videoID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, domain.MetadataFilename(videoID)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Exists(videoID string) bool {
	if err := validateID(videoID); err != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, domain.VideoFilename(videoID)))
	return err == nil
}

func (s *Store) PublishVideo(videoID, srcPath string) error {
	if err := validateID(videoID); err != nil {
		return err
	}
	dest := filepath.Join(s.dir, domain.VideoFilename(videoID))
	tmp := dest + ".tmp"

	if err := copyFile(srcPath, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("stage video: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish video: %w", err)
	}
	return nil
}

func (s *Store) PublishMetadata(videoID string, data []byte) error {
	if err := validateID(videoID); err != nil {
		return err
	}
	dest := filepath.Join(s.dir, domain.MetadataFilename(videoID))
	tmp := dest + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("stage metadata: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish metadata: %w", err)
	}
	return nil
}

func (s *Store) open(videoID string, filename func(string) string) (port.File, error) {
	if err := validateID(videoID); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, filename(videoID)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &file{File: f, info: info}, nil
}

// validateID rejects ids that could escape the store directory. Unknown but
// well-formed ids fall through to the normal not-found path.
func validateID(videoID string) error {
	if videoID == "" ||
		strings.ContainsAny(videoID, `/\`) ||
		strings.Contains(videoID, "..") {
		return domain.ErrNotFound
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

var _ port.FileStore = (*Store)(nil)
