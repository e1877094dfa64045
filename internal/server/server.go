// Package server exposes the scanning pipeline over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/docuscan/docuscan/internal/usecase"
)

const sessionCookie = "docuscan_session"

// Server wires the scan usecase into an HTTP handler tree.
type Server struct {
	scan *usecase.Scan
	log  zerolog.Logger
}

// New creates a Server around the given pipeline.
func New(scan *usecase.Scan, log zerolog.Logger) *Server {
	return &Server{scan: scan, log: log}
}

// Router builds the API router with all routes configured.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"docuscan"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/scans", s.handleUpload)
		r.Post("/scans/camera", s.handleCameraCapture)
		r.Post("/scans/commit", s.handleCommit)
		r.Get("/staging", s.handlePreview)
		r.Delete("/staging", s.handleClearStaging)
		r.Get("/history", s.handleHistoryList)
		r.Get("/history/{id}/download", s.handleDownload)
		r.Delete("/history/{id}", s.handleHistoryDelete)
	})

	return r
}

// session returns the caller's staging session id, issuing a cookie on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
