package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rentsignal/internal/config"
	"github.com/sells-group/rentsignal/internal/dataset"
	"github.com/sells-group/rentsignal/internal/fetcher"
	"github.com/sells-group/rentsignal/internal/neighborhood"
)

// newLoader builds the dataset loader with HTTP and FTP fetchers for remote
// dataset locations.
func newLoader(c *config.Config) *dataset.Loader {
	timeout := time.Duration(c.Fetch.TimeoutSecs) * time.Second
	resolver := fetcher.NewResolver(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  c.Fetch.UserAgent,
			Timeout:    timeout,
			MaxRetries: c.Fetch.MaxRetries,
		}),
		fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout}),
		c.Datasets.TempDir,
	)
	return dataset.NewLoader(dataset.NewOptions(c.Datasets), resolver)
}

// initAnalyzer loads the first dataset generation and returns an Analyzer
// serving it.
func initAnalyzer(ctx context.Context, c *config.Config) (*neighborhood.Analyzer, error) {
	mode, err := neighborhood.ParseListingMode(c.Analysis.ListingMode)
	if err != nil {
		return nil, err
	}

	a := neighborhood.NewAnalyzer(
		neighborhood.NewCache(neighborhood.NewPriceAggregator(mode)),
		newLoader(c),
	)
	if _, err := a.Reload(ctx); err != nil {
		return nil, eris.Wrap(err, "load datasets")
	}
	return a, nil
}
