package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDownloader() *HTTPDownloader {
	d := New(10 * time.Second)
	d.baseDelay = time.Millisecond
	return d
}

func TestDownload(t *testing.T) {
	t.Run("writes the body to destDir", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("video payload"))
		}))
		defer srv.Close()

		destDir := t.TempDir()
		path, err := newTestDownloader().Download(context.Background(), srv.URL, destDir, "v1")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("video payload"), data)
		assert.NoFileExists(t, path+".tmp")
	})

	t.Run("fails fast on 404", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestDownloader().Download(context.Background(), srv.URL, t.TempDir(), "v1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Equal(t, int32(1), calls.Load(), "client errors must not be retried")
	})

	t.Run("retries transient 500 and succeeds", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte("eventually"))
		}))
		defer srv.Close()

		path, err := newTestDownloader().Download(context.Background(), srv.URL, t.TempDir(), "v1")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("eventually"), data)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newTestDownloader().Download(context.Background(), srv.URL, t.TempDir(), "v1")
		assert.Error(t, err)
		assert.Equal(t, int32(maxAttempts), calls.Load())
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestDownloader().Download(ctx, srv.URL, t.TempDir(), "v1")
		assert.Error(t, err)
	})
}
