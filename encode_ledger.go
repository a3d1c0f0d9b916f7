package pricefeed

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// priceLine matches a ledger price directive: P <date> "<symbol>" <currency><price>.
var priceLine = regexp.MustCompile(`^P\s+(\S+)\s+"([^"]*)"\s+(.*?)(-?[0-9][0-9.]*)\s*$`)

// FormatPrice formats o as a ledger price directive, without line terminator.
func FormatPrice(o Observation, currency string) string {
	return fmt.Sprintf("P %s \"%s\" %s%s", o.Date, o.Commodity, currency, o.Price.String())
}

// EncodePrices writes one price directive per observation of series.
//
// currency is printed verbatim in front of every price.
func EncodePrices(w io.Writer, series Series, currency string) error {
	bw := bufio.NewWriter(w)
	for _, o := range series {
		if _, err := fmt.Fprintln(bw, FormatPrice(o, currency)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodePrices reads the price directives of a ledger file.
//
// Blank lines and comments are ignored. The currency of the last directive
// read is returned along with the series.
func DecodePrices(r io.Reader) (series Series, currency string, err error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.ContainsAny(line[:1], ";#*%|") {
			continue
		}
		m := priceLine.FindStringSubmatch(line)
		if m == nil {
			return nil, "", fmt.Errorf("line %d: not a price directive: %q", lineNum, line)
		}
		on, err := ParseISODate(m[1])
		if err != nil {
			return nil, "", fmt.Errorf("line %d: %w", lineNum, err)
		}
		price, err := decimal.NewFromString(m[4])
		if err != nil {
			return nil, "", fmt.Errorf("line %d: invalid price %q: %w", lineNum, m[4], err)
		}
		currency = m[3]
		series = append(series, Observation{Date: on, Commodity: m[2], Price: price})
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	return series, currency, nil
}

// MergePrices returns existing updated with fresh.
//
// Records of existing dated before the month of the first record of fresh
// are kept, the others are replaced by fresh. A quote recorded in the middle
// of a month is hence dropped once the month is fetched again.
func MergePrices(existing, fresh Series) Series {
	fresh = fresh.Normalize()
	if len(fresh) == 0 {
		return existing.Normalize()
	}
	cut := fresh[0].Date.StartOf(Monthly)
	var out Series
	for _, o := range existing.Normalize() {
		if o.Date.Before(cut) {
			out = append(out, o)
		}
	}
	return append(out, fresh...)
}
