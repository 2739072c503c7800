package neighborhood

import (
	"strings"

	"github.com/sells-group/rentsignal/internal/model"
)

// DisplayName returns the canonical spelling of a normalized neighborhood
// key: the first matching polygon name, else the first matching listing
// neighborhood. It returns "" when the snapshot does not know the key.
func DisplayName(key string, snap *model.Snapshot) string {
	if snap == nil || key == "" {
		return ""
	}
	for _, p := range snap.Neighborhoods {
		if Normalize(p.Name) == key {
			return strings.TrimSpace(p.Name)
		}
	}
	for i := range snap.Listings {
		if Normalize(snap.Listings[i].Neighborhood) == key {
			return strings.TrimSpace(snap.Listings[i].Neighborhood)
		}
	}
	return ""
}

// ResolveZipCodes returns the zip codes of every listing whose normalized
// neighborhood equals the normalized name. An empty set means no listing
// maps to the neighborhood.
func ResolveZipCodes(name string, listings []model.ListingRecord) model.ZipSet {
	key := Normalize(name)
	zips := model.NewZipSet()
	if key == "" {
		return zips
	}
	for i := range listings {
		if Normalize(listings[i].Neighborhood) == key {
			zips.Add(listings[i].ZipCode)
		}
	}
	return zips
}

// FilterListings returns the listings located in the named neighborhood.
func FilterListings(name string, listings []model.ListingRecord) []model.ListingRecord {
	key := Normalize(name)
	var out []model.ListingRecord
	if key == "" {
		return out
	}
	for i := range listings {
		if Normalize(listings[i].Neighborhood) == key {
			out = append(out, listings[i])
		}
	}
	return out
}

// CountByNeighborhood returns the number of listings per normalized
// neighborhood. Listings without a neighborhood are not counted.
func CountByNeighborhood(listings []model.ListingRecord) map[string]int {
	counts := make(map[string]int)
	for i := range listings {
		key := Normalize(listings[i].Neighborhood)
		if key == "" {
			continue
		}
		counts[key]++
	}
	return counts
}
