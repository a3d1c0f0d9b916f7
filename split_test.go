package pricefeed

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSplit(t *testing.T) {
	tests := []struct {
		token   string
		want    Split
		wantErr bool
	}{
		{token: "30:1,2023-01-25", want: Split{NewDate(2023, 1, 25), 30, 1}},
		{token: " 1:3 , 2019-09-25 ", want: Split{NewDate(2019, 9, 25), 1, 3}},
		{token: "4:2,2020-06-01", want: Split{NewDate(2020, 6, 1), 2, 1}},
		{token: "30-1,2023-01-25", wantErr: true},
		{token: "30:1", wantErr: true},
		{token: "30:1,2023-01-25,extra", wantErr: true},
		{token: "30:1:2,2023-01-25", wantErr: true},
		{token: "a:1,2023-01-25", wantErr: true},
		{token: "1.5:1,2023-01-25", wantErr: true},
		{token: "0:1,2023-01-25", wantErr: true},
		{token: "3:-1,2023-01-25", wantErr: true},
		{token: "3:1,2023-1-25", wantErr: true},
		{token: "3:1,2023-02-30", wantErr: true},
		{token: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseSplit(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSplit(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if tt.wantErr {
				var cerr *ConfigurationError
				if !errors.As(err, &cerr) {
					t.Fatalf("ParseSplit(%q) error = %T, want *ConfigurationError", tt.token, err)
				}
				if cerr.Token != tt.token {
					t.Errorf("ConfigurationError.Token = %q, want %q", cerr.Token, tt.token)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSplit(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseSplits(t *testing.T) {
	got, err := ParseSplits("30:1,2023-01-25, 1:3,2019-09-25", "", "2:1,2010-01-04")
	if err != nil {
		t.Fatalf("ParseSplits() unexpected error: %v", err)
	}
	want := []Split{
		{NewDate(2023, 1, 25), 30, 1},
		{NewDate(2019, 9, 25), 1, 3},
		{NewDate(2010, 1, 4), 2, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSplits() = %v, want %v", got, want)
	}

	got, err = ParseSplits("30:1,2023-01-25, 30-1,2023-01-25")
	if err == nil {
		t.Fatalf("ParseSplits() expected an error, got %v", got)
	}
	if got != nil {
		t.Errorf("ParseSplits() must not return a partial result, got %v", got)
	}

	got, err = ParseSplits()
	if err != nil || len(got) != 0 {
		t.Errorf("ParseSplits() = %v, %v, want empty", got, err)
	}
}

func TestSplit_String(t *testing.T) {
	s := NewSplit(NewDate(2024, 6, 10), 10, 1)
	if got, want := s.String(), "10:1,2024-06-10"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back, err := ParseSplit(s.String())
	if err != nil || back != s {
		t.Errorf("ParseSplit(String()) = %v, %v, want %v", back, err, s)
	}
}
