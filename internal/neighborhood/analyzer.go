package neighborhood

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/model"
)

// SnapshotLoader produces a new dataset generation.
type SnapshotLoader interface {
	Load(ctx context.Context) (*model.Snapshot, error)
}

// Analyzer serves neighborhood results for the current dataset generation.
type Analyzer struct {
	cache    *Cache
	loader   SnapshotLoader
	snap     atomic.Pointer[model.Snapshot]
	reloadMu sync.Mutex
}

// NewAnalyzer creates an Analyzer. The loader may be nil when snapshots are
// supplied with SetSnapshot.
func NewAnalyzer(cache *Cache, loader SnapshotLoader) *Analyzer {
	if cache == nil {
		cache = NewCache(nil)
	}
	return &Analyzer{cache: cache, loader: loader}
}

// Snapshot returns the current dataset generation, or nil before the first load.
func (a *Analyzer) Snapshot() *model.Snapshot {
	return a.snap.Load()
}

// SetSnapshot installs a new dataset generation and drops every cached result.
func (a *Analyzer) SetSnapshot(s *model.Snapshot) {
	a.snap.Store(s)
	a.cache.InvalidateAll()
}

// Reload loads a new generation with the configured loader and installs it.
// The previous generation stays in place when loading fails.
func (a *Analyzer) Reload(ctx context.Context) (*model.Snapshot, error) {
	if a.loader == nil {
		return nil, eris.New("neighborhood: no snapshot loader configured")
	}

	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	s, err := a.loader.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: reload datasets")
	}
	a.SetSnapshot(s)

	zap.L().Info("neighborhood: dataset generation installed",
		zap.String("generation", s.Generation),
		zap.Int("listings", len(s.Listings)),
		zap.Int("rentals", len(s.Rentals)),
		zap.Int("neighborhoods", len(s.Neighborhoods)),
		zap.Int("failures", len(s.Failures)),
	)
	return s, nil
}

// Analyze returns the result for one neighborhood.
func (a *Analyzer) Analyze(name string) (Result, error) {
	return a.cache.GetOrCompute(name, a.snap.Load())
}

// AnalyzeAll returns a result for every known neighborhood, ordered by
// normalized name.
func (a *Analyzer) AnalyzeAll() ([]Result, error) {
	snap := a.snap.Load()
	names := Names(snap)
	out := make([]Result, 0, len(names))
	for _, name := range names {
		r, err := a.cache.GetOrCompute(name, snap)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Density returns the number of listings per normalized neighborhood.
func (a *Analyzer) Density() map[string]int {
	snap := a.snap.Load()
	if snap == nil {
		return map[string]int{}
	}
	return CountByNeighborhood(snap.Listings)
}

// Listings returns the listings located in the named neighborhood.
func (a *Analyzer) Listings(name string) []model.ListingRecord {
	snap := a.snap.Load()
	if snap == nil {
		return nil
	}
	return FilterListings(name, snap.Listings)
}

// Stats returns the cache statistics.
func (a *Analyzer) Stats() CacheStats {
	return a.cache.Stats()
}

// Names returns the display names of every neighborhood in the snapshot,
// sorted by normalized name. Polygon names are used when boundaries are
// loaded; otherwise the first spelling seen in the listings is used.
func Names(snap *model.Snapshot) []string {
	if snap == nil {
		return nil
	}

	seen := make(map[string]string)
	if len(snap.Neighborhoods) > 0 {
		for _, p := range snap.Neighborhoods {
			key := Normalize(p.Name)
			if _, ok := seen[key]; !ok && key != "" {
				seen[key] = strings.TrimSpace(p.Name)
			}
		}
	} else {
		for i := range snap.Listings {
			key := Normalize(snap.Listings[i].Neighborhood)
			if _, ok := seen[key]; !ok && key != "" {
				seen[key] = strings.TrimSpace(snap.Listings[i].Neighborhood)
			}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = seen[k]
	}
	return names
}
