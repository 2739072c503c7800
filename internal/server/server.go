// Package server exposes neighborhood analyses and map payloads over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/model"
	"github.com/sells-group/rentsignal/internal/neighborhood"
)

// Options configures the HTTP API.
type Options struct {
	CORSOrigins []string
	TimePoints  [model.NumTimePoints]model.TimePointSpec
}

// Server serves the neighborhood API for one Analyzer.
type Server struct {
	analyzer *neighborhood.Analyzer
	opts     Options
}

// New creates a Server. Zero-valued time points fall back to the defaults.
func New(a *neighborhood.Analyzer, opts Options) *Server {
	def := model.DefaultTimePoints()
	for i := range opts.TimePoints {
		if opts.TimePoints[i].Label == "" {
			opts.TimePoints[i] = def[i]
		}
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{analyzer: a, opts: opts}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/neighborhoods", s.handleNeighborhoods)
		r.Get("/neighborhoods/{name}", s.handleNeighborhood)
		r.Get("/neighborhoods/{name}/listings", s.handleListings)
		r.Get("/density", s.handleDensity)
		r.Get("/heatmap", s.handleHeatmap)
		r.Get("/bubbles", s.handleBubbles)
		r.Get("/cache/stats", s.handleCacheStats)
		r.Post("/reload", s.handleReload)
	})

	return r
}

// requestLogger logs one line per request with the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
