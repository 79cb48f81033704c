// Package server implements the cascade HTTP render service: a chi router
// exposing chart rendering, health, and metrics endpoints on top of the
// shared pipeline runner.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cascadevis/cascade/pkg/buildinfo"
	"github.com/cascadevis/cascade/pkg/errors"
	"github.com/cascadevis/cascade/pkg/observability"
	"github.com/cascadevis/cascade/pkg/pipeline"
)

// Server is the HTTP render service.
type Server struct {
	cfg    *Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around a pipeline runner and wires up all routes.
func New(cfg *Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting server", "addr", s.cfg.Addr, "version", buildinfo.Version)
	return http.ListenAndServe(s.cfg.Addr, s.router)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestID)
	s.router.Use(s.requestLogger)

	s.router.Post("/api/render", s.handleRender)
	s.router.Get("/healthz", s.handleHealthz)

	if s.cfg.MetricsEnabled {
		reg, hooks := newMetricsRegistry()
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		s.router.Method("GET", "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
}

// requestID assigns each request a UUID, echoed in the X-Request-ID header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", ww.Header().Get("X-Request-ID"))
	})
}

// renderRequest is the POST /api/render body: pipeline options plus an
// optional single format shorthand.
type renderRequest struct {
	pipeline.Options
	Format string `json:"format,omitempty"`
}

// renderEnvelope is the multi-format JSON response. Artifact bytes are
// base64-encoded by the standard library.
type renderEnvelope struct {
	TableHash string            `json:"table_hash"`
	Stats     pipeline.Stats    `json:"stats"`
	CacheHits map[string]bool   `json:"cache_hits,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
}

var formatContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Format != "" {
		req.Options.Formats = []string{req.Format}
	}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// A single requested format returns the raw artifact; multiple formats
	// return a JSON envelope.
	if len(req.Options.Formats) == 1 {
		format := req.Options.Formats[0]
		w.Header().Set("Content-Type", formatContentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	s.writeJSON(w, http.StatusOK, renderEnvelope{
		TableHash: result.TableHash,
		Stats:     result.Stats,
		CacheHits: result.CacheInfo.RenderHits,
		Artifacts: result.Artifacts,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"version": buildinfo.Version,
		"now":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	s.logger.Error("request failed", "error", err)
	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
