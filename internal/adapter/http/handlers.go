package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/bnema/proctor/internal/adapter/http/validation"
	"github.com/bnema/proctor/internal/domain"
	"github.com/bnema/proctor/internal/infrastructure/logger"
	"github.com/bnema/proctor/internal/port"
)

// Handlers serves the JSON API. It composes the job queue and file store
// behind their ports; no request touches the worker directly.
type Handlers struct {
	queue   port.JobQueue
	store   port.FileStore
	baseURL string
	log     zerolog.Logger
}

func NewHandlers(queue port.JobQueue, store port.FileStore, baseURL string, log zerolog.Logger) *Handlers {
	return &Handlers{
		queue:   queue,
		store:   store,
		baseURL: baseURL,
		log:     log,
	}
}

type submitRequest struct {
	VideoURL string `json:"video_url"`
}

type submitResponse struct {
	TaskID string `json:"task_id"`
}

func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	videoURL, err := validation.VideoURL(req.VideoURL)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.queue.Enqueue(videoURL)
	if err != nil {
		h.log.Error().Err(err).Msg("enqueue failed")
		respondError(w, http.StatusInternalServerError, "failed to enqueue job")
		return
	}

	h.log.Info().
		Str("job_id", job.ID).
		Str("video_url", logger.SanitizeForLog(videoURL)).
		Msg("job submitted")
	respondJSON(w, http.StatusOK, submitResponse{TaskID: job.ID})
}

func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	job, err := h.queue.Get(taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		h.log.Error().Str("task_id", taskID).Err(err).Msg("status lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to query task status")
		return
	}

	switch job.Status {
	case domain.JobStatusFailed:
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "failed",
			"error":  job.ErrorMessage,
		})
	case domain.JobStatusSucceeded:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":       "success",
			"video_id":     job.VideoID,
			"video_url":    h.streamURL(job.VideoID),
			"metadata_url": h.metadataURL(job.VideoID),
		})
	default:
		// pending and running are one state from the client's side
		respondJSON(w, http.StatusOK, map[string]string{"status": "processing"})
	}
}

func (h *Handlers) Processed(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	if !h.store.Exists(videoID) {
		respondError(w, http.StatusNotFound, "video not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"video_url":          h.streamURL(videoID),
		"download_video_url": h.baseURL + "/download/" + videoID,
		"metadata_url":       h.metadataURL(videoID),
	})
}

func (h *Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	f, ok := h.openFile(w, videoID, h.store.Video)
	if !ok {
		return
	}
	defer f.Close() //nolint:errcheck

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", "inline")
	// ServeContent handles Range requests so players can seek.
	http.ServeContent(w, r, f.Name(), f.ModTime(), f)
}

func (h *Handlers) DownloadVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	f, ok := h.openFile(w, videoID, h.store.Video)
	if !ok {
		return
	}
	defer f.Close() //nolint:errcheck

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name()))
	http.ServeContent(w, r, f.Name(), f.ModTime(), f)
}

func (h *Handlers) DownloadMetadata(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	f, ok := h.openFile(w, videoID, h.store.Metadata)
	if !ok {
		return
	}
	defer f.Close() //nolint:errcheck

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name()))
	http.ServeContent(w, r, f.Name(), f.ModTime(), f)
}

func (h *Handlers) Metadata(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	data, err := h.store.ReadMetadata(videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "metadata not found")
			return
		}
		h.log.Error().Str("video_id", videoID).Err(err).Msg("metadata read failed")
		respondError(w, http.StatusInternalServerError, "failed to read metadata")
		return
	}

	// The worker writes reports atomically, so this should never trip. If
	// it does, surface a server error instead of relaying garbage.
	if !json.Valid(data) {
		h.log.Error().Str("video_id", videoID).Msg("metadata file is not valid JSON")
		respondError(w, http.StatusInternalServerError, "metadata is corrupted")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// openFile opens a stored artifact, writing the error response itself when
// the lookup fails.
func (h *Handlers) openFile(w http.ResponseWriter, videoID string, open func(string) (port.File, error)) (port.File, bool) {
	f, err := open(videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "file not found")
			return nil, false
		}
		h.log.Error().Str("video_id", videoID).Err(err).Msg("file open failed")
		respondError(w, http.StatusInternalServerError, "failed to open file")
		return nil, false
	}
	return f, true
}

func (h *Handlers) streamURL(videoID string) string {
	return h.baseURL + "/stream/" + videoID
}

func (h *Handlers) metadataURL(videoID string) string {
	return h.baseURL + "/metadata/" + videoID
}
