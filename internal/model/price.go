package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumTimePoints is the number of calendar snapshots compared per neighborhood.
const NumTimePoints = 3

// TimePoint indexes one of the three calendar snapshots, oldest first.
type TimePoint int

const (
	T0 TimePoint = iota
	T1
	T2
)

// TimePoints lists every time point in chronological order.
var TimePoints = [NumTimePoints]TimePoint{T0, T1, T2}

// TimePointSpec maps a time point to its source column and chart label.
type TimePointSpec struct {
	Column string `json:"column" yaml:"column" mapstructure:"column"`
	Label  string `json:"label" yaml:"label" mapstructure:"label"`
}

// DefaultTimePoints returns the source columns and chart labels used by the
// Chicago listing extract.
func DefaultTimePoints() [NumTimePoints]TimePointSpec {
	return [NumTimePoints]TimePointSpec{
		{Column: "31-12-2023", Label: "December"},
		{Column: "31-03-2024", Label: "March"},
		{Column: "30-06-2024", Label: "June"},
	}
}

// Price is a price observation that may be absent. An absent price is
// never the same thing as a price of zero.
type Price struct {
	Value float64
	Valid bool
}

// NewPrice returns a valid price.
func NewPrice(v float64) Price {
	return Price{Value: v, Valid: true}
}

// ParsePrice converts a raw field to a Price. Currency symbols, thousands
// separators and surrounding whitespace are ignored. Anything that does not
// parse to a finite float is returned as an invalid Price.
func ParsePrice(raw string) Price {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Price{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}
	}
	return NewPrice(v)
}

// MarshalJSON encodes an invalid price as null.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// UnmarshalJSON decodes null as an invalid price.
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Price{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = NewPrice(v)
	return nil
}

// MarshalYAML encodes an invalid price as null.
func (p Price) MarshalYAML() (any, error) {
	if !p.Valid {
		return nil, nil
	}
	return p.Value, nil
}

// Series holds one price per time point.
type Series [NumTimePoints]Price

// Complete reports whether every time point has a valid price.
func (s Series) Complete() bool {
	for _, p := range s {
		if !p.Valid {
			return false
		}
	}
	return true
}

// Values returns the raw values, with 0 for invalid entries. Only meaningful
// after Complete has been checked.
func (s Series) Values() [NumTimePoints]float64 {
	var out [NumTimePoints]float64
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Latest returns the most recent valid price in the series.
func (s Series) Latest() (Price, bool) {
	for i := NumTimePoints - 1; i >= 0; i-- {
		if s[i].Valid {
			return s[i], true
		}
	}
	return Price{}, false
}

// AggregatePriceSeries holds the averaged rental and listing prices of a
// neighborhood at each time point.
type AggregatePriceSeries struct {
	Rental  Series `json:"rental" yaml:"rental"`
	Listing Series `json:"listing" yaml:"listing"`
}
