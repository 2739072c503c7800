package neighborhood

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/model"
)

// Result is the computed aggregate and recommendation of one neighborhood.
type Result struct {
	Name         string                     `json:"name" yaml:"name"`
	Key          string                     `json:"key" yaml:"key"`
	ZipCodes     []string                   `json:"zip_codes" yaml:"zip_codes"`
	Series       model.AggregatePriceSeries `json:"series" yaml:"series"`
	Category     model.Category             `json:"category" yaml:"category"`
	RentalTrend  model.Trend                `json:"rental_trend" yaml:"rental_trend"`
	ListingTrend model.Trend                `json:"listing_trend" yaml:"listing_trend"`
	Generation   string                     `json:"generation" yaml:"generation"`
	ComputedAt   time.Time                  `json:"computed_at" yaml:"computed_at"`
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Generation string  `json:"generation"`
	Entries    int     `json:"entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// Cache memoizes neighborhood results per normalized name for one dataset
// generation. Lookup, computation and store happen under a single lock, so
// each neighborhood is computed at most once per generation.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]Result
	generation string
	aggregator Aggregator
	now        func() time.Time
	hits       atomic.Int64
	misses     atomic.Int64
}

// NewCache creates an empty cache that computes misses with the given
// aggregator. A nil aggregator selects a flat PriceAggregator.
func NewCache(agg Aggregator) *Cache {
	if agg == nil {
		agg = NewPriceAggregator(ListingModeFlat)
	}
	return &Cache{
		entries:    make(map[string]Result),
		aggregator: agg,
		now:        time.Now,
	}
}

// GetOrCompute returns the cached result for name, computing and storing it
// on a miss. A nil snapshot is treated as a generation with no records, so
// every neighborhood resolves to no_data. A snapshot from a different
// generation than the cached entries resets the cache first.
func (c *Cache) GetOrCompute(name string, snap *model.Snapshot) (Result, error) {
	key := Normalize(name)
	if key == "" {
		return Result{}, eris.New("neighborhood: empty neighborhood name")
	}
	if snap == nil {
		snap = &model.Snapshot{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if snap.Generation != c.generation {
		if len(c.entries) > 0 {
			zap.L().Debug("neighborhood: dataset generation changed, resetting cache",
				zap.String("from", c.generation),
				zap.String("to", snap.Generation),
				zap.Int("entries", len(c.entries)),
			)
		}
		c.entries = make(map[string]Result)
		c.generation = snap.Generation
	}

	if r, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return r.clone(), nil
	}
	c.misses.Add(1)

	r := c.compute(name, key, snap)
	c.entries[key] = r
	return r.clone(), nil
}

// clone copies the slices of r so callers cannot modify a cached entry.
func (r Result) clone() Result {
	r.ZipCodes = slices.Clone(r.ZipCodes)
	return r
}

// Peek returns the cached result for name without computing it.
func (c *Cache) Peek(name string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[Normalize(name)]
	return r.clone(), ok
}

// InvalidateAll drops every cached result.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Result)
	c.generation = ""
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	entries := len(c.entries)
	gen := c.generation
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Generation: gen,
		Entries:    entries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    hitRate,
	}
}

// compute runs the resolve, aggregate and classify steps. Caller holds c.mu.
func (c *Cache) compute(name, key string, snap *model.Snapshot) Result {
	zips := ResolveZipCodes(key, snap.Listings)
	if len(zips) == 0 {
		zap.L().Warn("neighborhood: no zip codes for neighborhood",
			zap.String("neighborhood", key),
			zap.String("generation", snap.Generation),
		)
	}

	series := c.aggregator.Aggregate(zips, snap.Rentals, snap.Listings)
	category := model.CategoryNoData
	if len(zips) > 0 {
		category = Classify(series)
	}
	if len(zips) > 0 && category == model.CategoryNoData {
		zap.L().Warn("neighborhood: incomplete rental or listing prices",
			zap.String("neighborhood", key),
			zap.Int("zip_codes", len(zips)),
		)
	}

	display := DisplayName(key, snap)
	if display == "" {
		display = strings.TrimSpace(name)
	}

	return Result{
		Name:         display,
		Key:          key,
		ZipCodes:     zips.Sorted(),
		Series:       series,
		Category:     category,
		RentalTrend:  TrendOf(series.Rental),
		ListingTrend: TrendOf(series.Listing),
		Generation:   snap.Generation,
		ComputedAt:   c.now(),
	}
}
