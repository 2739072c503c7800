package overlay

import (
	"fmt"
	"math"

	"github.com/sells-group/rentsignal/internal/model"
)

// Heatmap layer settings.
const (
	HeatIntensity = 0.5
	HeatRadius    = 25
	HeatBlur      = 15
)

// Heatmap is a heat layer payload. Each point is [lat, lon, intensity].
type Heatmap struct {
	Points [][3]float64 `json:"points"`
	Radius int          `json:"radius"`
	Blur   int          `json:"blur"`
}

// NewHeatmap builds heat points for every listing.
func NewHeatmap(listings []model.ListingRecord) Heatmap {
	pts := make([][3]float64, 0, len(listings))
	for i := range listings {
		pts = append(pts, [3]float64{listings[i].Latitude, listings[i].Longitude, HeatIntensity})
	}
	return Heatmap{Points: pts, Radius: HeatRadius, Blur: HeatBlur}
}

// Bubble is a price-scaled circle marker.
type Bubble struct {
	ID          string  `json:"id"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	Price       float64 `json:"price"`
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	FillOpacity float64 `json:"fillOpacity"`
	Popup       string  `json:"popup"`
}

// NewBubbles builds a bubble for each listing with a positive latest price.
func NewBubbles(listings []model.ListingRecord) []Bubble {
	out := make([]Bubble, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		p, ok := l.Prices.Latest()
		if !ok || p.Value <= 0 {
			continue
		}
		out = append(out, Bubble{
			ID:          l.ID,
			Latitude:    l.Latitude,
			Longitude:   l.Longitude,
			Price:       p.Value,
			Radius:      BubbleRadius(p.Value),
			Color:       PriceColor(p.Value),
			FillOpacity: 0.8,
			Popup:       fmt.Sprintf("Price: $%.2f", p.Value),
		})
	}
	return out
}

// BubbleRadius scales a marker with the square root of its price.
func BubbleRadius(price float64) float64 {
	return math.Sqrt(price) * 0.1
}

// PriceColor buckets a price into a marker color.
func PriceColor(price float64) string {
	switch {
	case price < 500:
		return "green"
	case price < 1000:
		return "yellow"
	case price < 2000:
		return "orange"
	default:
		return "red"
	}
}

// Marker is a listing pin.
type Marker struct {
	ID           string        `json:"id"`
	Latitude     float64       `json:"lat"`
	Longitude    float64       `json:"lng"`
	Neighborhood string        `json:"neighbourhood"`
	ZipCode      string        `json:"zip_code"`
	Prices       []model.Price `json:"prices"`
}

// NewMarkers builds a pin for each listing.
func NewMarkers(listings []model.ListingRecord) []Marker {
	out := make([]Marker, 0, len(listings))
	for i := range listings {
		l := listings[i]
		out = append(out, Marker{
			ID:           l.ID,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
			Neighborhood: l.Neighborhood,
			ZipCode:      l.ZipCode,
			Prices:       l.Prices[:],
		})
	}
	return out
}
