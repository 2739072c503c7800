package overlay

import (
	"fmt"
	"html"

	"github.com/sells-group/rentsignal/internal/model"
)

// Style is a Leaflet path style.
type Style struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor,omitempty"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
}

// Recommendation is the styled recommendation of one neighborhood.
type Recommendation struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Style    Style          `json:"style"`
	Tooltip  string         `json:"tooltip"`
}

// RecommendationStyle styles a neighborhood outline by category.
func RecommendationStyle(name string, c model.Category) Recommendation {
	return Recommendation{
		Category: c,
		Label:    c.Label(),
		Style: Style{
			Color:   c.Color(),
			Weight:  2,
			Opacity: 0.7,
		},
		Tooltip: Tooltip(name, c),
	}
}

// Tooltip returns the permanent tooltip HTML of a neighborhood. The name is
// HTML-escaped.
func Tooltip(name string, c model.Category) string {
	return fmt.Sprintf("<strong>%s</strong><br>Recommendation: %s", html.EscapeString(name), c.Label())
}
