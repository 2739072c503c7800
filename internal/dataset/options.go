// Package dataset loads the listings, rental price and neighborhood boundary
// datasets into an immutable model.Snapshot.
package dataset

import (
	"unicode/utf8"

	"github.com/sells-group/rentsignal/internal/config"
	"github.com/sells-group/rentsignal/internal/model"
)

// Options locates and describes the three input datasets.
type Options struct {
	Listings      string
	Rentals       string
	Neighborhoods string

	// NeighborhoodProperty is the GeoJSON feature property holding the name.
	NeighborhoodProperty string
	// NeighborhoodField is the shapefile DBF attribute holding the name.
	NeighborhoodField string

	Encoding   string
	Delimiter  rune
	Strict     bool
	TimePoints [model.NumTimePoints]model.TimePointSpec
}

// NewOptions derives loader options from configuration.
func NewOptions(cfg config.DatasetsConfig) Options {
	delim := ','
	if r, _ := utf8.DecodeRuneInString(cfg.Delimiter); r != utf8.RuneError {
		delim = r
	}
	return Options{
		Listings:             cfg.Listings,
		Rentals:              cfg.Rentals,
		Neighborhoods:        cfg.Neighborhoods,
		NeighborhoodProperty: cfg.NeighborhoodProperty,
		NeighborhoodField:    cfg.NeighborhoodField,
		Encoding:             cfg.Encoding,
		Delimiter:            delim,
		Strict:               cfg.Strict,
		TimePoints:           cfg.TimePointSpecs(),
	}
}
