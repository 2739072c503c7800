package model

import (
	"sort"
	"strings"
	"time"

	"github.com/twpayne/go-geom"
)

// ListingRecord is one short-term-rental listing from the listings extract.
type ListingRecord struct {
	ID           string  `json:"id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Neighborhood string  `json:"neighbourhood"`
	ZipCode      string  `json:"zip_code"`
	Prices       Series  `json:"prices"`
}

// RentalPriceRecord is the long-term rental price series of one zip code.
type RentalPriceRecord struct {
	RegionZipCode string `json:"region_name"`
	Prices        Series `json:"prices"`
}

// NeighborhoodPolygon is a named neighborhood boundary. Geometry is a
// *geom.Polygon or *geom.MultiPolygon in WGS 84.
type NeighborhoodPolygon struct {
	Name     string
	Geometry geom.T
}

// ZipSet is a set of trimmed zip codes.
type ZipSet map[string]struct{}

// NewZipSet builds a set from the given codes, trimming each and skipping blanks.
func NewZipSet(codes ...string) ZipSet {
	s := make(ZipSet, len(codes))
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

// Add inserts a trimmed code. Blank codes are ignored.
func (s ZipSet) Add(code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	s[code] = struct{}{}
}

// Contains reports whether the trimmed code is in the set.
func (s ZipSet) Contains(code string) bool {
	_, ok := s[strings.TrimSpace(code)]
	return ok
}

// Sorted returns the codes in ascending order.
func (s ZipSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// SourceKind names one of the three input datasets.
type SourceKind string

const (
	SourceListings      SourceKind = "listings"
	SourceRentals       SourceKind = "rentals"
	SourceNeighborhoods SourceKind = "neighborhoods"
)

// SourceFailure records a dataset that could not be loaded.
type SourceFailure struct {
	Kind     SourceKind `json:"kind"`
	Location string     `json:"location"`
	Error    string     `json:"error"`
}

// Snapshot is one immutable dataset generation. It is safe to share across
// goroutines once built.
type Snapshot struct {
	Generation    string
	LoadedAt      time.Time
	Listings      []ListingRecord
	Rentals       []RentalPriceRecord
	Neighborhoods []NeighborhoodPolygon
	Failures      []SourceFailure
}

// Empty reports whether the snapshot carries no records at all.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Listings) == 0 && len(s.Rentals) == 0 && len(s.Neighborhoods) == 0)
}
