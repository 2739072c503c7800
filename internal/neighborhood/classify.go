package neighborhood

import "github.com/sells-group/rentsignal/internal/model"

// Classify compares the rental and listing trends of a series.
// Rules, in order:
//   - no_data: any time point on either side has no price
//   - invest: both sides strictly rising T0 < T1 < T2
//   - dont_invest: both sides strictly falling T0 > T1 > T2
//   - caution: anything else
func Classify(series model.AggregatePriceSeries) model.Category {
	if !series.Rental.Complete() || !series.Listing.Complete() {
		return model.CategoryNoData
	}
	r := series.Rental.Values()
	l := series.Listing.Values()
	switch {
	case rising(r) && rising(l):
		return model.CategoryInvest
	case falling(r) && falling(l):
		return model.CategoryDontInvest
	default:
		return model.CategoryCaution
	}
}

// TrendOf reports the direction of a single series.
func TrendOf(s model.Series) model.Trend {
	if !s.Complete() {
		return model.TrendUnknown
	}
	v := s.Values()
	switch {
	case rising(v):
		return model.TrendRising
	case falling(v):
		return model.TrendFalling
	default:
		return model.TrendMixed
	}
}

func rising(x [model.NumTimePoints]float64) bool {
	return x[2] > x[1] && x[1] > x[0]
}

func falling(x [model.NumTimePoints]float64) bool {
	return x[2] < x[1] && x[1] < x[0]
}
