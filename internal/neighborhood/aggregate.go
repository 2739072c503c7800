package neighborhood

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rentsignal/internal/model"
)

// ListingMode selects how listing prices are averaged across zip codes.
type ListingMode string

const (
	// ListingModeFlat averages every matching listing equally.
	ListingModeFlat ListingMode = "flat"
	// ListingModeByZip averages per-zip means, so each zip code carries the
	// same weight regardless of how many listings it has.
	ListingModeByZip ListingMode = "by_zip"
)

// ParseListingMode validates a configured listing mode. An empty string
// selects ListingModeFlat.
func ParseListingMode(s string) (ListingMode, error) {
	switch ListingMode(s) {
	case "", ListingModeFlat:
		return ListingModeFlat, nil
	case ListingModeByZip:
		return ListingModeByZip, nil
	default:
		return "", eris.Errorf("neighborhood: unknown listing mode %q", s)
	}
}

// Aggregator computes the rental and listing price series of a zip set.
type Aggregator interface {
	Aggregate(zips model.ZipSet, rentals []model.RentalPriceRecord, listings []model.ListingRecord) model.AggregatePriceSeries
}

// PriceAggregator is the default Aggregator.
type PriceAggregator struct {
	mode ListingMode
}

// NewPriceAggregator creates a PriceAggregator using the given listing mode.
func NewPriceAggregator(mode ListingMode) *PriceAggregator {
	if mode == "" {
		mode = ListingModeFlat
	}
	return &PriceAggregator{mode: mode}
}

// Aggregate averages rental prices over records whose zip code is in zips,
// and listing prices over listings whose zip code is in zips. A time point
// with no valid contributing price is left invalid. An empty zip set yields
// two fully invalid series.
func (a *PriceAggregator) Aggregate(zips model.ZipSet, rentals []model.RentalPriceRecord, listings []model.ListingRecord) model.AggregatePriceSeries {
	var out model.AggregatePriceSeries
	if len(zips) == 0 {
		return out
	}

	var rental [model.NumTimePoints]meanAcc
	for i := range rentals {
		if !zips.Contains(rentals[i].RegionZipCode) {
			continue
		}
		for tp, p := range rentals[i].Prices {
			rental[tp].add(p)
		}
	}
	for tp := range rental {
		out.Rental[tp] = rental[tp].mean()
	}

	if a.mode == ListingModeByZip {
		out.Listing = listingMeanByZip(zips, listings)
	} else {
		out.Listing = listingMeanFlat(zips, listings)
	}
	return out
}

func listingMeanFlat(zips model.ZipSet, listings []model.ListingRecord) model.Series {
	var acc [model.NumTimePoints]meanAcc
	for i := range listings {
		if !zips.Contains(listings[i].ZipCode) {
			continue
		}
		for tp, p := range listings[i].Prices {
			acc[tp].add(p)
		}
	}
	var s model.Series
	for tp := range acc {
		s[tp] = acc[tp].mean()
	}
	return s
}

func listingMeanByZip(zips model.ZipSet, listings []model.ListingRecord) model.Series {
	perZip := make(map[string]*[model.NumTimePoints]meanAcc)
	for i := range listings {
		if !zips.Contains(listings[i].ZipCode) {
			continue
		}
		zip := strings.TrimSpace(listings[i].ZipCode)
		acc, ok := perZip[zip]
		if !ok {
			acc = &[model.NumTimePoints]meanAcc{}
			perZip[zip] = acc
		}
		for tp, p := range listings[i].Prices {
			acc[tp].add(p)
		}
	}

	var outer [model.NumTimePoints]meanAcc
	for _, acc := range perZip {
		for tp := range acc {
			outer[tp].add(acc[tp].mean())
		}
	}
	var s model.Series
	for tp := range outer {
		s[tp] = outer[tp].mean()
	}
	return s
}

// meanAcc accumulates valid prices.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(p model.Price) {
	if !p.Valid {
		return
	}
	m.sum += p.Value
	m.n++
}

func (m *meanAcc) mean() model.Price {
	if m.n == 0 {
		return model.Price{}
	}
	return model.NewPrice(m.sum / float64(m.n))
}
