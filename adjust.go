package pricefeed

import "github.com/shopspring/decimal"

// adjustedPrecision is the number of fractional digits kept when a split
// ratio does not divide a price exactly.
const adjustedPrecision = 10

// Adjust rewrites historical prices so that they are comparable with prices
// quoted after every split.
//
// An observation is divided by the product of the ratios of all splits
// effective strictly after its date. Observations dated on or after a split
// are already expressed in post-split units and are left untouched by it.
func Adjust(series Series, splits []Split) Series {
	out := make(Series, len(series))
	for i, o := range series {
		num, den := decimal.NewFromInt(1), decimal.NewFromInt(1)
		applied := false
		for _, s := range splits {
			if s.Date.After(o.Date) {
				num = num.Mul(decimal.NewFromInt(s.Numerator))
				den = den.Mul(decimal.NewFromInt(s.Denominator))
				applied = true
			}
		}
		if applied {
			// price / (num/den) == price * den / num, one division only.
			o.Price = o.Price.Mul(den).DivRound(num, adjustedPrecision)
		}
		out[i] = o
	}
	return out
}
