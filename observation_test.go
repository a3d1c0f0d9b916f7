package pricefeed

import (
	"slices"
	"testing"
)

func TestSeries_Normalize(t *testing.T) {
	s := Series{obs("2024-01-03", "3"), obs("2024-01-01", "1"), obs("2024-01-03", "4"), obs("2024-01-02", "2")}
	got := prices(s.Normalize())
	want := []string{"2024-01-01 1", "2024-01-02 2", "2024-01-03 4"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestSeries_Since(t *testing.T) {
	s := Series{obs("2024-01-01", "1"), obs("2024-01-02", "2"), obs("2024-01-03", "3")}
	if got, want := prices(s.Since(NewDate(2024, 1, 2))), []string{"2024-01-02 2", "2024-01-03 3"}; !slices.Equal(got, want) {
		t.Errorf("Since() = %v, want %v", got, want)
	}
	if got := s.Since(Date{}); len(got) != 3 {
		t.Errorf("Since(zero) = %v, want everything", got)
	}
}

func TestSeries_Upsert(t *testing.T) {
	s := Series{obs("2024-01-01", "1"), obs("2024-01-03", "3")}
	tests := []struct {
		name string
		o    Observation
		want []string
	}{
		{"replace", obs("2024-01-03", "30"), []string{"2024-01-01 1", "2024-01-03 30"}},
		{"append", obs("2024-01-04", "4"), []string{"2024-01-01 1", "2024-01-03 3", "2024-01-04 4"}},
		{"insert", obs("2024-01-02", "2"), []string{"2024-01-01 1", "2024-01-02 2", "2024-01-03 3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prices(s.Upsert(tt.o)); !slices.Equal(got, tt.want) {
				t.Errorf("Upsert() = %v, want %v", got, tt.want)
			}
		})
	}
	if len(s) != 2 {
		t.Errorf("Upsert() modified the receiver: %v", s)
	}
}

func TestSeries_WithCommodity(t *testing.T) {
	s := Series{obs("2024-01-01", "1")}
	got := s.WithCommodity("NVDA")
	if got[0].Commodity != "NVDA" || s[0].Commodity != "TEST" {
		t.Errorf("WithCommodity() = %v, receiver %v", got, s)
	}
}
