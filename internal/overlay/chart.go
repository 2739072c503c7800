package overlay

import (
	"github.com/sells-group/rentsignal/internal/model"
)

// Chart dataset labels and colors.
const (
	RentalDatasetLabel  = "Rental Prices"
	ListingDatasetLabel = "Airbnb Prices"
	RentalColor         = "blue"
	ListingColor        = "green"
)

// ChartDataset is one line of a price trend chart. Invalid points encode as
// JSON null so the chart shows a gap instead of a zero.
type ChartDataset struct {
	Label       string        `json:"label" yaml:"label"`
	Data        []model.Price `json:"data" yaml:"data"`
	BorderColor string        `json:"borderColor" yaml:"border_color"`
	Fill        bool          `json:"fill" yaml:"fill"`
}

// Chart is a line chart of rental and listing prices over the time points.
type Chart struct {
	Title    string         `json:"title" yaml:"title"`
	Labels   []string       `json:"labels" yaml:"labels"`
	Datasets []ChartDataset `json:"datasets" yaml:"datasets"`
}

// NewChart builds the price trend chart of a neighborhood.
func NewChart(name string, series model.AggregatePriceSeries, tps [model.NumTimePoints]model.TimePointSpec) Chart {
	labels := make([]string, model.NumTimePoints)
	for i, tp := range tps {
		labels[i] = tp.Label
	}
	return Chart{
		Title:  name + " - Price Trends",
		Labels: labels,
		Datasets: []ChartDataset{
			{Label: RentalDatasetLabel, Data: series.Rental[:], BorderColor: RentalColor},
			{Label: ListingDatasetLabel, Data: series.Listing[:], BorderColor: ListingColor},
		},
	}
}
