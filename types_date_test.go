package pricefeed

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2025-07-01 ", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"2023-02-30", Date{}, true},

		// Relative Duration Format
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-2w", today.Add(-14), false},
		{"+1m", NewDate(today.Year(), today.Month()+1, today.Day()), false},
		{"-1y", NewDate(today.Year()-1, today.Month(), today.Day()), false},
		{"-1q", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		input string
		err   bool
	}{
		{"2023-01-25", false},
		{"2023-1-25", true},
		{"2023-02-29", true},
		{"2024-02-29", false},
		{"25/01/2023", true},
	}
	for _, tt := range tests {
		_, err := ParseISODate(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("ParseISODate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
		}
	}
}

func TestDate_StartOf_EndOf(t *testing.T) {
	d := NewDate(2024, time.February, 15)
	if got, want := d.StartOf(Monthly), NewDate(2024, 2, 1); got != want {
		t.Errorf("StartOf(Monthly) = %v, want %v", got, want)
	}
	if got, want := d.EndOf(Monthly), NewDate(2024, 2, 29); got != want {
		t.Errorf("EndOf(Monthly) = %v, want %v", got, want)
	}
	if got, want := d.EndOf(Yearly), NewDate(2024, 12, 31); got != want {
		t.Errorf("EndOf(Yearly) = %v, want %v", got, want)
	}
	if got := d.StartOf(Daily); got != d {
		t.Errorf("StartOf(Daily) = %v, want %v", got, d)
	}
}

func TestDateOf(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("no tz database: %v", err)
	}
	// 21:00 in New York is already the next day in UTC.
	ts := time.Date(2023, time.January, 31, 21, 0, 0, 0, ny)
	if got, want := DateOf(ts), NewDate(2023, 1, 31); got != want {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
	if got, want := DateOf(ts.UTC()), NewDate(2023, 2, 1); got != want {
		t.Errorf("DateOf(UTC) = %v, want %v", got, want)
	}
}
