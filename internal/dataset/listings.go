package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/fetcher"
	"github.com/sells-group/rentsignal/internal/geo"
	"github.com/sells-group/rentsignal/internal/model"
)

// ParseListings converts a listings table into records. Rows with a
// non-finite latitude or longitude are dropped and counted. Unparsable
// prices are kept as invalid time points.
func ParseListings(t *fetcher.Table, opts Options) ([]model.ListingRecord, int, error) {
	latCol := t.Column("latitude", "lat")
	lonCol := t.Column("longitude", "lon", "lng")
	zipCol := t.Column("zip_code", "zipcode", "zip")
	if latCol < 0 || lonCol < 0 || zipCol < 0 {
		return nil, 0, eris.New("dataset: listings need latitude, longitude and zip_code columns")
	}
	idCol := t.Column("id")
	hoodCol := t.Column("neighbourhood", "neighborhood")

	priceCols, missing := timePointColumns(t, opts)
	if len(missing) > 0 {
		zap.L().Warn("dataset: listings missing time point columns", zap.Strings("columns", missing))
	}

	out := make([]model.ListingRecord, 0, len(t.Rows))
	dropped := 0
	for i, row := range t.Rows {
		lat, latOK := parseCoord(fetcher.Field(row, latCol))
		lon, lonOK := parseCoord(fetcher.Field(row, lonCol))
		if !latOK || !lonOK {
			dropped++
			continue
		}

		id := strings.TrimSpace(fetcher.Field(row, idCol))
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		rec := model.ListingRecord{
			ID:           id,
			Latitude:     lat,
			Longitude:    lon,
			Neighborhood: strings.TrimSpace(fetcher.Field(row, hoodCol)),
			ZipCode:      normalizeZip(fetcher.Field(row, zipCol)),
		}
		for tp, col := range priceCols {
			rec.Prices[tp] = model.ParsePrice(fetcher.Field(row, col))
		}
		out = append(out, rec)
	}

	if dropped > 0 {
		zap.L().Debug("dataset: dropped listings without coordinates", zap.Int("dropped", dropped))
	}
	return out, dropped, nil
}

func parseCoord(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// AssignNeighborhoods fills the neighborhood of listings that have none by
// locating their coordinates in loc. Returns the number of listings assigned.
func AssignNeighborhoods(listings []model.ListingRecord, loc *geo.Locator) int {
	if loc == nil || loc.Len() == 0 {
		return 0
	}
	n := 0
	for i := range listings {
		if listings[i].Neighborhood != "" {
			continue
		}
		if name, ok := loc.Locate(listings[i].Latitude, listings[i].Longitude); ok {
			listings[i].Neighborhood = name
			n++
		}
	}
	return n
}
