// Package neighborhood joins listings, rental price series and neighborhood
// names into per-neighborhood price aggregates and investment recommendations.
//
// The pipeline runs in four steps: ResolveZipCodes maps a neighborhood to the
// zip codes of its listings, an Aggregator averages rental and listing prices
// over those zip codes at each time point, Classify compares the two trends,
// and Cache memoizes the result per normalized name for one dataset
// generation.
package neighborhood
