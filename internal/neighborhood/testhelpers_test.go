package neighborhood

import (
	"sync/atomic"

	"github.com/sells-group/rentsignal/internal/model"
)

func prices(vals ...any) model.Series {
	var s model.Series
	for i, v := range vals {
		switch x := v.(type) {
		case float64:
			s[i] = model.NewPrice(x)
		case int:
			s[i] = model.NewPrice(float64(x))
		case string:
			s[i] = model.ParsePrice(x)
		}
	}
	return s
}

func listing(id, hood, zip string, p model.Series) model.ListingRecord {
	return model.ListingRecord{
		ID:           id,
		Latitude:     41.92,
		Longitude:    -87.65,
		Neighborhood: hood,
		ZipCode:      zip,
		Prices:       p,
	}
}

func rental(zip string, p model.Series) model.RentalPriceRecord {
	return model.RentalPriceRecord{RegionZipCode: zip, Prices: p}
}

// sampleSnapshot holds one rising neighborhood, one falling neighborhood,
// one mixed neighborhood and one neighborhood with no rental coverage.
func sampleSnapshot(gen string) *model.Snapshot {
	return &model.Snapshot{
		Generation: gen,
		Listings: []model.ListingRecord{
			listing("1", "Lincoln Park", "60614", prices(50, 80, 120)),
			listing("2", " lincoln park", "60614 ", prices(50, 80, 120)),
			listing("3", "Loop", "60601", prices(200, 150, 100)),
			listing("4", "Uptown", "60640", prices(90, 100, 110)),
			listing("5", "Hegewisch", "60633", prices(70, 75, 80)),
		},
		Rentals: []model.RentalPriceRecord{
			rental("60614", prices(100, 150, 200)),
			rental("60601", prices(300, 200, 100)),
			rental("60640", prices(100, 90, 95)),
		},
		Neighborhoods: []model.NeighborhoodPolygon{
			{Name: "Lincoln Park"},
			{Name: "Loop"},
			{Name: "Uptown"},
			{Name: "Hegewisch"},
			{Name: "Edison Park"},
		},
	}
}

// countingAggregator records how often Aggregate is called.
type countingAggregator struct {
	inner Aggregator
	calls atomic.Int64
}

func (c *countingAggregator) Aggregate(zips model.ZipSet, rentals []model.RentalPriceRecord, listings []model.ListingRecord) model.AggregatePriceSeries {
	c.calls.Add(1)
	return c.inner.Aggregate(zips, rentals, listings)
}

func newCountingAggregator() *countingAggregator {
	return &countingAggregator{inner: NewPriceAggregator(ListingModeFlat)}
}
