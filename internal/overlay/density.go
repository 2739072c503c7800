package overlay

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strconv"
)

// Density scale stops and domain.
var densityStops = [3]string{"#f2f0f7", "#d4b9da", "#980043"}

const (
	densityMin = 0.0
	densityMax = 50.0
)

// DensityColor maps a listing count onto the choropleth scale. Counts are
// clamped to [0, 50] and interpolated linearly in RGB between three evenly
// spaced stops.
func DensityColor(count int) string {
	v := math.Max(densityMin, math.Min(densityMax, float64(count)))
	t := (v - densityMin) / (densityMax - densityMin)

	segs := float64(len(densityStops) - 1)
	i := int(math.Floor(t * segs))
	if i >= len(densityStops)-1 {
		return densityStops[len(densityStops)-1]
	}
	local := t*segs - float64(i)

	a, b := mustRGB(densityStops[i]), mustRGB(densityStops[i+1])
	var out [3]uint8
	for c := range out {
		out[c] = uint8(math.Round(float64(a[c]) + (float64(b[c])-float64(a[c]))*local))
	}
	return fmt.Sprintf("#%02x%02x%02x", out[0], out[1], out[2])
}

func mustRGB(hex string) [3]uint8 {
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			panic(err)
		}
		rgb[i] = uint8(v)
	}
	return rgb
}

// DensityEntry is the choropleth value of one neighborhood.
type DensityEntry struct {
	Neighborhood string `json:"neighbourhood"`
	Count        int    `json:"count"`
	Color        string `json:"color"`
	Popup        string `json:"popup"`
	Style        Style  `json:"style"`
}

// Density builds choropleth entries sorted by neighborhood key.
func Density(counts map[string]int) []DensityEntry {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DensityEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, DensityEntry{
			Neighborhood: k,
			Count:        counts[k],
			Color:        DensityColor(counts[k]),
			Popup:        DensityPopup(k, counts[k]),
			Style:        DensityStyle(counts[k]),
		})
	}
	return out
}

// DensityPopup returns the choropleth popup HTML of a neighborhood. The name
// is HTML-escaped.
func DensityPopup(name string, count int) string {
	return fmt.Sprintf("<strong>%s</strong><br>Listings: %d", html.EscapeString(name), count)
}

// DensityStyle styles a neighborhood polygon for the choropleth.
func DensityStyle(count int) Style {
	return Style{
		Color:       "black",
		FillColor:   DensityColor(count),
		Weight:      1,
		FillOpacity: 0.7,
	}
}
