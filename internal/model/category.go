package model

// Category is the investment recommendation for a neighborhood.
type Category string

const (
	CategoryInvest     Category = "invest"
	CategoryDontInvest Category = "dont_invest"
	CategoryCaution    Category = "caution"
	CategoryNoData     Category = "no_data"
)

// Label returns the display label used in tooltips.
func (c Category) Label() string {
	switch c {
	case CategoryInvest:
		return "Invest"
	case CategoryDontInvest:
		return "Don't Invest"
	case CategoryCaution:
		return "Caution"
	default:
		return "No Data"
	}
}

// Color returns the overlay fill color.
func (c Category) Color() string {
	switch c {
	case CategoryInvest:
		return "pink"
	case CategoryDontInvest:
		return "red"
	case CategoryCaution:
		return "orange"
	default:
		return "blue"
	}
}

// Trend is the direction of a three-point price series.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendMixed   Trend = "flat_or_mixed"
	TrendUnknown Trend = "unknown"
)
