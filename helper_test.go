package pricefeed

import "github.com/shopspring/decimal"

// obs is a helper for test to create an observation from const.
func obs(date string, price string) Observation {
	return Observation{Date: MustParse(date), Price: decimal.RequireFromString(price), Commodity: "TEST"}
}

// prices returns the prices of series as strings, easier to compare in tests.
func prices(series Series) []string {
	out := make([]string, len(series))
	for i, o := range series {
		out[i] = o.Date.String() + " " + o.Price.String()
	}
	return out
}
