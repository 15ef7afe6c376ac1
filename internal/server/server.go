// Package server serves the portfolio pages, the content JSON API, rendered
// growth previews and operational endpoints over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
	"github.com/phanxgames/sprout/internal/metrics"
	"github.com/phanxgames/sprout/internal/page"
)

// Options configures the handler.
type Options struct {
	Logger *slog.Logger

	// Registry receives the HTTP and growth collectors and backs /metrics.
	// A fresh registry is used when nil.
	Registry *prometheus.Registry

	// StaticDir is served under /static/ when set.
	StaticDir string
}

// Server holds the state shared by the handlers.
type Server struct {
	cfg      sprout.Config
	store    *content.Store
	variants map[string]*sprout.Variant
	log      *slog.Logger
	observer *metrics.Observer
}

// NewHandler builds the routed handler for store and cfg.
func NewHandler(cfg sprout.Config, store *content.Store, opts Options) (http.Handler, error) {
	variants, err := cfg.BuildVariants()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		variants: variants,
		log:      log,
		observer: metrics.New(reg),
	}
	httpMetrics := metrics.NewHTTP(reg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)
	r.Use(enableCORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.log)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.listProjects)
		r.Get("/projects/{id}", s.getProject)
		r.Get("/labs", s.listLabs)
		r.Get("/labs/{id}", s.getLab)
		r.Get("/cv", s.listCVs)
		r.Get("/variants", s.listVariants)
		r.Get("/render", s.render)
	})

	for _, route := range page.Routes {
		r.Get(route, s.servePage)
	}

	if opts.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		r.Handle("/static/*", fs)
	}
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, log *slog.Logger) {
	writeJSON(w, status, map[string]string{"error": msg}, log)
}
