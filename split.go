package pricefeed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Split represents a stock split event for a security.
//
// From Date on, each old unit is worth Numerator/Denominator new units. A
// reverse split has Numerator < Denominator.
type Split struct {
	Date        Date
	Numerator   int64
	Denominator int64
}

// NewSplit creates a new Split reduced to its simplest fraction.
func NewSplit(date Date, num, den int64) Split {
	if g := gcd(num, den); g > 1 {
		num, den = num/g, den/g
	}
	return Split{Date: date, Numerator: num, Denominator: den}
}

// Ratio returns the number of new units per old unit.
func (s Split) Ratio() decimal.Decimal {
	return decimal.NewFromInt(s.Numerator).Div(decimal.NewFromInt(s.Denominator))
}

// String returns the split in the declaration syntax accepted by ParseSplit.
func (s Split) String() string {
	return fmt.Sprintf("%d:%d,%s", s.Numerator, s.Denominator, s.Date)
}

// ParseSplit parses a split declaration like "30:1,2023-01-25".
func ParseSplit(token string) (Split, error) {
	fail := func(err error) (Split, error) {
		return Split{}, &ConfigurationError{Token: token, Err: err}
	}

	parts := strings.Split(strings.TrimSpace(token), ",")
	if len(parts) != 2 {
		return fail(errors.New("split must be in the format N:M,YYYY-MM-DD"))
	}
	ratio := strings.Split(strings.TrimSpace(parts[0]), ":")
	if len(ratio) != 2 {
		return fail(fmt.Errorf("split ratio %q must be in the format N:M", parts[0]))
	}

	num, err := parseRatioTerm(ratio[0])
	if err != nil {
		return fail(err)
	}
	den, err := parseRatioTerm(ratio[1])
	if err != nil {
		return fail(err)
	}
	on, err := ParseISODate(strings.TrimSpace(parts[1]))
	if err != nil {
		return fail(err)
	}
	return NewSplit(on, num, den), nil
}

// parseRatioTerm parses one side of a split ratio, a positive integer.
func parseRatioTerm(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("split ratio term %q is not an integer", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("split ratio term must be positive, got %d", v)
	}
	return v, nil
}

// ParseSplits parses split declarations. Each token can hold a single
// declaration or a ", " separated list of them.
//
// It fails on the first malformed declaration.
func ParseSplits(tokens ...string) ([]Split, error) {
	var splits []Split
	for _, token := range tokens {
		for _, decl := range strings.Split(token, ", ") {
			if strings.TrimSpace(decl) == "" {
				continue
			}
			s, err := ParseSplit(decl)
			if err != nil {
				return nil, err
			}
			splits = append(splits, s)
		}
	}
	return splits, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
