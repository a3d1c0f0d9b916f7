package pricefeed

import "fmt"

// ResampleMode selects how a daily series is reduced.
type ResampleMode int

const (
	// ResampleMonthly keeps the last observation of every closed month.
	ResampleMonthly ResampleMode = iota
	// ResampleMonthlyWithLatest is ResampleMonthly plus the latest observation
	// when it belongs to a month that is not closed yet.
	ResampleMonthlyWithLatest
)

func (m ResampleMode) String() string {
	switch m {
	case ResampleMonthly:
		return "monthly"
	case ResampleMonthlyWithLatest:
		return "monthly+latest"
	default:
		return fmt.Sprintf("ResampleMode(%d)", int(m))
	}
}

// Resample reduces series to one observation per calendar month: the latest
// observation recorded in that month.
//
// cutoff is the first day not covered by the series, usually today: a month
// is closed when its last day is before cutoff, and only closed months are
// reported. A zero cutoff considers every month closed.
//
// In ResampleMonthlyWithLatest mode, when the latest observation of series belongs to
// a month still open, it is appended as a trailing snapshot.
//
// series must be sorted with unique dates.
func Resample(series Series, mode ResampleMode, cutoff Date) Series {
	closed := func(month Date) bool {
		return cutoff.IsZero() || month.EndOf(Monthly).Before(cutoff)
	}

	var out Series
	index := make(map[Date]int) // first day of month -> position in out
	for _, o := range series {
		month := o.Date.StartOf(Monthly)
		if !closed(month) {
			continue
		}
		if i, ok := index[month]; ok {
			if o.Date.After(out[i].Date) {
				out[i] = o
			}
			continue
		}
		index[month] = len(out)
		out = append(out, o)
	}

	if mode == ResampleMonthlyWithLatest {
		if last, ok := series.Last(); ok && !closed(last.Date.StartOf(Monthly)) {
			out = append(out, last)
		}
	}
	return out
}
