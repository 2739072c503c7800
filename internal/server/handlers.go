package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/model"
	"github.com/sells-group/rentsignal/internal/neighborhood"
	"github.com/sells-group/rentsignal/internal/overlay"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

// HealthResponse reports liveness and the loaded dataset generation.
type HealthResponse struct {
	Status     string `json:"status"`
	Generation string `json:"generation,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if snap := s.analyzer.Snapshot(); snap != nil {
		resp.Generation = snap.Generation
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleNeighborhoods(w http.ResponseWriter, r *http.Request) {
	all, err := s.analyzer.AnalyzeAll()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	categories := make(map[string]model.Category, len(all))
	for _, n := range all {
		categories[n.Key] = n.Category
	}

	var polys []model.NeighborhoodPolygon
	if snap := s.analyzer.Snapshot(); snap != nil {
		polys = snap.Neighborhoods
	}
	render.JSON(w, r, overlay.FeatureCollection(polys, categories, s.analyzer.Density()))
}

// NeighborhoodResponse is the full analysis of one neighborhood.
type NeighborhoodResponse struct {
	Name           string                 `json:"name"`
	Result         neighborhood.Result    `json:"result"`
	Recommendation overlay.Recommendation `json:"recommendation"`
	Chart          overlay.Chart          `json:"chart"`
}

func (s *Server) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	res, err := s.analyzer.Analyze(name)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	render.JSON(w, r, NeighborhoodResponse{
		Name:           res.Name,
		Result:         res,
		Recommendation: overlay.RecommendationStyle(res.Name, res.Category),
		Chart:          overlay.NewChart(res.Name, res.Series, s.opts.TimePoints),
	})
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if neighborhood.Normalize(name) == "" {
		writeError(w, r, http.StatusBadRequest, "neighborhood name is required")
		return
	}
	render.JSON(w, r, overlay.NewMarkers(s.analyzer.Listings(name)))
}

func (s *Server) handleDensity(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, overlay.Density(s.analyzer.Density()))
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, overlay.NewHeatmap(s.listings()))
}

func (s *Server) handleBubbles(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, overlay.NewBubbles(s.listings()))
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.analyzer.Stats())
}

// ReloadResponse summarizes a newly installed dataset generation.
type ReloadResponse struct {
	Generation    string                `json:"generation"`
	Listings      int                   `json:"listings"`
	Rentals       int                   `json:"rentals"`
	Neighborhoods int                   `json:"neighborhoods"`
	Failures      []model.SourceFailure `json:"failures"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.analyzer.Reload(r.Context())
	if err != nil {
		zap.L().Error("server: reload failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	failures := snap.Failures
	if failures == nil {
		failures = []model.SourceFailure{}
	}
	render.JSON(w, r, ReloadResponse{
		Generation:    snap.Generation,
		Listings:      len(snap.Listings),
		Rentals:       len(snap.Rentals),
		Neighborhoods: len(snap.Neighborhoods),
		Failures:      failures,
	})
}

func (s *Server) listings() []model.ListingRecord {
	if snap := s.analyzer.Snapshot(); snap != nil {
		return snap.Listings
	}
	return nil
}

// nameParam returns the decoded {name} route parameter.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if dec, err := url.PathUnescape(raw); err == nil {
		raw = dec
	}
	return strings.TrimSpace(raw)
}
