package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/rentsignal/internal/model"
	"github.com/sells-group/rentsignal/internal/neighborhood"
)

type stubLoader struct {
	snap *model.Snapshot
	err  error
}

func (s *stubLoader) Load(_ context.Context) (*model.Snapshot, error) {
	return s.snap, s.err
}

func series(a, b, c float64) model.Series {
	return model.Series{model.NewPrice(a), model.NewPrice(b), model.NewPrice(c)}
}

func square(x float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{{x, 0}, {x + 1, 0}, {x + 1, 1}, {x, 1}, {x, 0}}})
}

func testSnapshot(gen string) *model.Snapshot {
	return &model.Snapshot{
		Generation: gen,
		Listings: []model.ListingRecord{
			{ID: "1", Latitude: 41.92, Longitude: -87.65, Neighborhood: "Lincoln Park", ZipCode: "60614", Prices: series(50, 80, 120)},
			{ID: "2", Latitude: 41.88, Longitude: -87.63, Neighborhood: "Loop", ZipCode: "60601", Prices: series(2500, 1500, 900)},
		},
		Rentals: []model.RentalPriceRecord{
			{RegionZipCode: "60614", Prices: series(100, 150, 200)},
			{RegionZipCode: "60601", Prices: series(300, 200, 100)},
		},
		Neighborhoods: []model.NeighborhoodPolygon{
			{Name: "Lincoln Park", Geometry: square(0)},
			{Name: "Loop", Geometry: square(2)},
			{Name: "Edison Park", Geometry: square(4)},
		},
	}
}

func newTestServer(t *testing.T, loader neighborhood.SnapshotLoader) (*httptest.Server, *neighborhood.Analyzer) {
	t.Helper()
	a := neighborhood.NewAnalyzer(nil, loader)
	a.SetSnapshot(testSnapshot("g1"))
	srv := httptest.NewServer(New(a, Options{}).Handler())
	t.Cleanup(srv.Close)
	return srv, a
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body HealthResponse
	resp := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "g1", body.Generation)
}

func TestNeighborhood(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body struct {
		Name   string `json:"name"`
		Result struct {
			Key      string   `json:"key"`
			ZipCodes []string `json:"zip_codes"`
			Category string   `json:"category"`
		} `json:"result"`
		Recommendation struct {
			Label   string `json:"label"`
			Tooltip string `json:"tooltip"`
			Style   struct {
				Color string `json:"color"`
			} `json:"style"`
		} `json:"recommendation"`
		Chart struct {
			Title    string   `json:"title"`
			Labels   []string `json:"labels"`
			Datasets []struct {
				Label string     `json:"label"`
				Data  []*float64 `json:"data"`
			} `json:"datasets"`
		} `json:"chart"`
	}
	resp := getJSON(t, srv.URL+"/api/neighborhoods/Lincoln%20Park", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Lincoln Park", body.Name)
	assert.Equal(t, "lincoln park", body.Result.Key)
	assert.Equal(t, []string{"60614"}, body.Result.ZipCodes)
	assert.Equal(t, "invest", body.Result.Category)
	assert.Equal(t, "Invest", body.Recommendation.Label)
	assert.Equal(t, "pink", body.Recommendation.Style.Color)
	assert.Equal(t, "<strong>Lincoln Park</strong><br>Recommendation: Invest", body.Recommendation.Tooltip)
	assert.Equal(t, "Lincoln Park - Price Trends", body.Chart.Title)
	assert.Equal(t, []string{"December", "March", "June"}, body.Chart.Labels)
	require.Len(t, body.Chart.Datasets, 2)
	require.NotNil(t, body.Chart.Datasets[1].Data[2])
	assert.InDelta(t, 120, *body.Chart.Datasets[1].Data[2], 1e-9)
}

func TestNeighborhood_Unknown(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body NeighborhoodResponse
	resp := getJSON(t, srv.URL+"/api/neighborhoods/Atlantis", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.CategoryNoData, body.Result.Category)
	assert.Empty(t, body.Result.ZipCodes)
	assert.Equal(t, "blue", body.Recommendation.Style.Color)
}

func TestNeighborhood_UsesCanonicalName(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body NeighborhoodResponse
	resp := getJSON(t, srv.URL+"/api/neighborhoods/%20lincoln%20PARK", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lincoln Park", body.Name)
	assert.Equal(t, "Lincoln Park", body.Result.Name)
	assert.Equal(t, "<strong>Lincoln Park</strong><br>Recommendation: Invest", body.Recommendation.Tooltip)
	assert.Equal(t, "Lincoln Park - Price Trends", body.Chart.Title)
}

func TestNeighborhood_EscapesTooltipName(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body NeighborhoodResponse
	resp := getJSON(t, srv.URL+"/api/neighborhoods/%3Cimg%20src=x%20onerror=alert(1)%3E", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.CategoryNoData, body.Result.Category)
	assert.Equal(t, "<strong>&lt;img src=x onerror=alert(1)&gt;</strong><br>Recommendation: No Data", body.Recommendation.Tooltip)
	assert.NotContains(t, body.Recommendation.Tooltip, "<img")
}

func TestNeighborhood_BlankName(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body errorResponse
	resp := getJSON(t, srv.URL+"/api/neighborhoods/%20%20", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body.Error)
}

func TestNeighborhoods_FeatureCollection(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	resp := getJSON(t, srv.URL+"/api/neighborhoods", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "FeatureCollection", body.Type)
	require.Len(t, body.Features, 3)

	byName := map[string]map[string]any{}
	for _, f := range body.Features {
		byName[f.Properties["neighbourhood"].(string)] = f.Properties
	}
	assert.Equal(t, "invest", byName["Lincoln Park"]["category"])
	assert.Equal(t, "dont_invest", byName["Loop"]["category"])
	assert.Equal(t, "no_data", byName["Edison Park"]["category"])
	assert.EqualValues(t, 1, byName["Loop"]["listing_count"])
}

func TestListings(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var body []map[string]any
	resp := getJSON(t, srv.URL+"/api/neighborhoods/loop/listings", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body, 1)
	assert.Equal(t, "2", body[0]["id"])
	assert.Equal(t, "60601", body[0]["zip_code"])
}

func TestDensityHeatmapBubbles(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var density []map[string]any
	getJSON(t, srv.URL+"/api/density", &density)
	require.Len(t, density, 2)
	assert.Equal(t, "lincoln park", density[0]["neighbourhood"])

	var heat struct {
		Points [][]float64 `json:"points"`
		Radius int         `json:"radius"`
	}
	getJSON(t, srv.URL+"/api/heatmap", &heat)
	assert.Len(t, heat.Points, 2)
	assert.Equal(t, []float64{41.92, -87.65, 0.5}, heat.Points[0])
	assert.Equal(t, 25, heat.Radius)

	var bubbles []map[string]any
	getJSON(t, srv.URL+"/api/bubbles", &bubbles)
	require.Len(t, bubbles, 2)
	assert.Equal(t, "green", bubbles[0]["color"])
	assert.Equal(t, "yellow", bubbles[1]["color"])
}

func TestCacheStats(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	getJSON(t, srv.URL+"/api/neighborhoods/Loop", nil)
	getJSON(t, srv.URL+"/api/neighborhoods/loop", nil)

	var stats neighborhood.CacheStats
	getJSON(t, srv.URL+"/api/cache/stats", &stats)
	assert.Equal(t, "g1", stats.Generation)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestReload(t *testing.T) {
	next := testSnapshot("g2")
	next.Failures = []model.SourceFailure{{Kind: model.SourceRentals, Location: "r.csv", Error: "boom"}}
	srv, a := newTestServer(t, &stubLoader{snap: next})

	getJSON(t, srv.URL+"/api/neighborhoods/Loop", nil)

	resp, err := http.Post(srv.URL+"/api/reload", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body ReloadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "g2", body.Generation)
	assert.Equal(t, 2, body.Listings)
	require.Len(t, body.Failures, 1)
	assert.Equal(t, model.SourceRentals, body.Failures[0].Kind)

	assert.Equal(t, "g2", a.Snapshot().Generation)
	assert.Equal(t, 0, a.Stats().Entries)
}

func TestReload_Failure(t *testing.T) {
	srv, a := newTestServer(t, &stubLoader{err: errors.New("disk on fire")})

	resp, err := http.Post(srv.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "g1", a.Snapshot().Generation)
}

func TestNoSnapshot(t *testing.T) {
	srv := httptest.NewServer(New(neighborhood.NewAnalyzer(nil, nil), Options{}).Handler())
	defer srv.Close()

	var fc struct {
		Features []any `json:"features"`
	}
	resp := getJSON(t, srv.URL+"/api/neighborhoods", &fc)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, fc.Features)

	var heat struct {
		Points [][]float64 `json:"points"`
	}
	getJSON(t, srv.URL+"/api/heatmap", &heat)
	assert.Empty(t, heat.Points)

	resp = getJSON(t, srv.URL+"/api/neighborhoods/Loop/listings", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	a := neighborhood.NewAnalyzer(nil, nil)
	srv := httptest.NewServer(New(a, Options{CORSOrigins: []string{"https://maps.example.com"}}).Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://maps.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, "https://maps.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}
