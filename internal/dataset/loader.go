package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/rentsignal/internal/fetcher"
	"github.com/sells-group/rentsignal/internal/geo"
	"github.com/sells-group/rentsignal/internal/model"
)

// Loader builds snapshots from the configured dataset locations. It
// implements neighborhood.SnapshotLoader.
type Loader struct {
	opts     Options
	resolver *fetcher.Resolver
	now      func() time.Time
	newID    func() string
}

// NewLoader creates a Loader. A nil resolver reads local files only.
func NewLoader(opts Options, resolver *fetcher.Resolver) *Loader {
	if resolver == nil {
		resolver = fetcher.NewResolver(nil, nil, "")
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	for i, tp := range opts.TimePoints {
		if tp.Column == "" {
			opts.TimePoints[i] = model.DefaultTimePoints()[i]
		}
	}
	return &Loader{
		opts:     opts,
		resolver: resolver,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load reads the three datasets concurrently and returns a new generation.
// A dataset that fails to load is recorded in Snapshot.Failures and left
// empty, unless the loader is strict, in which case the first failure is
// returned. Neighborhood boundaries are optional; an empty location skips them.
func (l *Loader) Load(ctx context.Context) (*model.Snapshot, error) {
	log := zap.L().With(zap.String("component", "dataset.loader"))
	start := l.now()

	snap := &model.Snapshot{Generation: l.newID()}
	var failMu sync.Mutex

	// fail records a load failure, or returns it when strict.
	fail := func(kind model.SourceKind, location string, err error) error {
		if l.opts.Strict {
			return eris.Wrapf(err, "dataset: load %s", kind)
		}
		log.Error("dataset: source failed to load, continuing without it",
			zap.String("kind", string(kind)),
			zap.String("location", location),
			zap.Error(err),
		)
		failMu.Lock()
		snap.Failures = append(snap.Failures, model.SourceFailure{
			Kind:     kind,
			Location: location,
			Error:    err.Error(),
		})
		failMu.Unlock()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := l.loadListings(gctx)
		if err != nil {
			return fail(model.SourceListings, l.opts.Listings, err)
		}
		snap.Listings = recs
		return nil
	})

	g.Go(func() error {
		recs, err := l.loadRentals(gctx)
		if err != nil {
			return fail(model.SourceRentals, l.opts.Rentals, err)
		}
		snap.Rentals = recs
		return nil
	})

	g.Go(func() error {
		polys, err := l.loadNeighborhoods(gctx)
		if err != nil {
			return fail(model.SourceNeighborhoods, l.opts.Neighborhoods, err)
		}
		snap.Neighborhoods = polys
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(snap.Neighborhoods) > 0 && len(snap.Listings) > 0 {
		assigned := AssignNeighborhoods(snap.Listings, geo.NewLocator(snap.Neighborhoods))
		if assigned > 0 {
			log.Info("dataset: assigned neighborhoods by location", zap.Int("listings", assigned))
		}
	}

	snap.LoadedAt = l.now()
	log.Info("dataset: snapshot loaded",
		zap.String("generation", snap.Generation),
		zap.Int("listings", len(snap.Listings)),
		zap.Int("rentals", len(snap.Rentals)),
		zap.Int("neighborhoods", len(snap.Neighborhoods)),
		zap.Int("failures", len(snap.Failures)),
		zap.Duration("elapsed", snap.LoadedAt.Sub(start)),
	)
	return snap, nil
}

func (l *Loader) loadListings(ctx context.Context) ([]model.ListingRecord, error) {
	path, cleanup, err := l.resolver.Resolve(ctx, l.opts.Listings, tableExts...)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	t, err := readTable(ctx, path, l.opts)
	if err != nil {
		return nil, err
	}
	recs, _, err := ParseListings(t, l.opts)
	return recs, err
}

func (l *Loader) loadRentals(ctx context.Context) ([]model.RentalPriceRecord, error) {
	path, cleanup, err := l.resolver.Resolve(ctx, l.opts.Rentals, tableExts...)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	t, err := readTable(ctx, path, l.opts)
	if err != nil {
		return nil, err
	}
	return ParseRentals(t, l.opts)
}

func (l *Loader) loadNeighborhoods(ctx context.Context) ([]model.NeighborhoodPolygon, error) {
	if l.opts.Neighborhoods == "" {
		return nil, nil
	}
	path, cleanup, err := l.resolver.Resolve(ctx, l.opts.Neighborhoods, boundaryExts...)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return readNeighborhoods(path, l.opts)
}
