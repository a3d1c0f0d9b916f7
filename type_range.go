package pricefeed

import "fmt"

// Range is an interval of days, both ends included.
//
// A zero From leaves the interval open on the left, as for a history fetched
// from its very first price.
type Range struct{ From, To Date }

// NewRange returns the range between two days, in whichever order they come.
func NewRange(from, to Date) Range {
	if from.After(to) {
		return Range{From: to, To: from}
	}
	return Range{From: from, To: to}
}

// Contains reports whether day falls within r.
func (r Range) Contains(day Date) bool {
	if !r.From.IsZero() && day.Before(r.From) {
		return false
	}
	return !day.After(r.To)
}

// Identifier names r for use in file names: "2024-03-05" for a day,
// "2024-03" for a month, "2024" for a year and "2024-03-05_2024-03-09"
// otherwise.
func (r Range) Identifier() string {
	for _, p := range []Period{Daily, Monthly, Yearly} {
		if p.Range(r.From) != r {
			continue
		}
		switch p {
		case Daily:
			return r.From.String()
		case Monthly:
			return r.From.Format("2006-01")
		default:
			return r.From.Format("2006")
		}
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}
