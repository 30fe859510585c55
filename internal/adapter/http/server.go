package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bnema/proctor/internal/adapter/http/middleware"
)

// NewServer wires the routes onto a chi router.
func NewServer(h *Handlers, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer, middleware.Logger(log))

	r.Get("/healthz", h.Health)

	r.Post("/submit", h.Submit)
	r.Get("/status/{taskID}", h.Status)
	r.Get("/processed/{videoID}", h.Processed)
	r.Get("/stream/{videoID}", h.Stream)
	r.Get("/download/{videoID}", h.DownloadVideo)
	r.Get("/download/{videoID}/metadata", h.DownloadMetadata)
	r.Get("/metadata/{videoID}", h.Metadata)

	return r
}
