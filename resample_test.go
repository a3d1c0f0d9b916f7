package pricefeed

import (
	"slices"
	"testing"
)

func TestResample(t *testing.T) {
	roundTrip := Series{obs("2024-01-15", "100"), obs("2024-01-31", "105"), obs("2024-02-02", "110")}
	today := NewDate(2024, 2, 3)

	tests := []struct {
		name   string
		series Series
		mode   ResampleMode
		cutoff Date
		want   []string
	}{
		{
			name:   "monthly drops the open month",
			series: roundTrip,
			mode:   ResampleMonthly,
			cutoff: today,
			want:   []string{"2024-01-31 105"},
		},
		{
			name:   "monthly with latest appends the open month",
			series: roundTrip,
			mode:   ResampleMonthlyWithLatest,
			cutoff: today,
			want:   []string{"2024-01-31 105", "2024-02-02 110"},
		},
		{
			name:   "zero cutoff closes every month",
			series: roundTrip,
			mode:   ResampleMonthly,
			want:   []string{"2024-01-31 105", "2024-02-02 110"},
		},
		{
			name:   "zero cutoff with latest does not duplicate",
			series: roundTrip,
			mode:   ResampleMonthlyWithLatest,
			want:   []string{"2024-01-31 105", "2024-02-02 110"},
		},
		{
			name:   "last trading day is not the calendar month end",
			series: Series{obs("2023-09-28", "10"), obs("2023-09-29", "11"), obs("2023-10-02", "12")},
			mode:   ResampleMonthly,
			cutoff: NewDate(2023, 11, 1),
			want:   []string{"2023-09-29 11", "2023-10-02 12"},
		},
		{
			name:   "month closes on its last day",
			series: Series{obs("2024-01-31", "105")},
			mode:   ResampleMonthly,
			cutoff: NewDate(2024, 1, 31),
			want:   []string{},
		},
		{
			name:   "empty",
			series: Series{},
			mode:   ResampleMonthlyWithLatest,
			cutoff: today,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prices(Resample(tt.series, tt.mode, tt.cutoff))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resample() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResample_Idempotent(t *testing.T) {
	series := Series{
		obs("2023-11-15", "1"), obs("2023-11-30", "2"),
		obs("2023-12-01", "3"), obs("2023-12-29", "4"),
		obs("2024-01-02", "5"),
	}
	cutoff := NewDate(2024, 1, 3)
	for _, mode := range []ResampleMode{ResampleMonthly, ResampleMonthlyWithLatest} {
		once := Resample(series, mode, cutoff)
		twice := Resample(once, mode, cutoff)
		if !slices.Equal(prices(once), prices(twice)) {
			t.Errorf("%v: Resample() is not idempotent: %v then %v", mode, prices(once), prices(twice))
		}
	}
}
