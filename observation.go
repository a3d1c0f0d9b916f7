package pricefeed

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Observation is the price of a commodity on a given day.
type Observation struct {
	Date      Date
	Price     decimal.Decimal
	Commodity string
}

func (o Observation) String() string {
	return fmt.Sprintf("%s %s %s", o.Date, o.Commodity, o.Price)
}

// Series is a chronological sequence of observations.
//
// Functions in this package always return series sorted by date with unique
// dates.
type Series []Observation

// Normalize returns a copy of s sorted by date with a single observation per
// date. When several observations share a date, the last one in s wins.
func (s Series) Normalize() Series {
	out := make(Series, 0, len(s))
	index := make(map[Date]int, len(s))
	for _, o := range s {
		if i, ok := index[o.Date]; ok {
			out[i] = o
			continue
		}
		index[o.Date] = len(out)
		out = append(out, o)
	}
	slices.SortStableFunc(out, func(a, b Observation) int { return a.Date.Compare(b.Date) })
	return out
}

// Since returns the observations dated on or after from.
func (s Series) Since(from Date) Series {
	if from.IsZero() {
		return s
	}
	out := make(Series, 0, len(s))
	for _, o := range s {
		if !o.Date.Before(from) {
			out = append(out, o)
		}
	}
	return out
}

// Last returns the latest observation of a sorted series.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// WithCommodity returns a copy of s where every observation is attributed to commodity.
func (s Series) WithCommodity(commodity string) Series {
	out := make(Series, len(s))
	for i, o := range s {
		o.Commodity = commodity
		out[i] = o
	}
	return out
}

// Upsert returns a copy of s with o replacing the observation at the same
// date, or inserted at its chronological position.
func (s Series) Upsert(o Observation) Series {
	out := append(slices.Clone(s), o)
	return out.Normalize()
}
