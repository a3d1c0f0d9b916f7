package eodhd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// simplifyDecimalRatio converts a ratio of decimals into a simplified integer fraction.
func simplifyDecimalRatio(numDecimal, denDecimal decimal.Decimal) (num, den int64) {
	// To convert the decimal ratio to a simple integer fraction,
	// we find a common multiplier to make both numerator and denominator integers.
	// We use the exponent of the decimal (number of digits after the decimal point).
	exp := max(-numDecimal.Exponent(), -denDecimal.Exponent(), 0)
	multiplier := decimal.NewFromInt(10).Pow(decimal.NewFromInt32(exp))

	numInt := numDecimal.Mul(multiplier).BigInt()
	denInt := denDecimal.Mul(multiplier).BigInt()
	if denInt.Sign() == 0 {
		return numInt.Int64(), 0
	}

	// Simplify the fraction by dividing by the greatest common divisor.
	commonDivisor := new(big.Int).GCD(nil, nil, new(big.Int).Abs(numInt), new(big.Int).Abs(denInt))
	if commonDivisor.Sign() == 0 {
		return 0, denInt.Int64()
	}

	num = new(big.Int).Div(numInt, commonDivisor).Int64()
	den = new(big.Int).Div(denInt, commonDivisor).Int64()
	return
}

// readNumber reads a JSON value that should be a number.
//
// Sometimes, this API returns the value as a string.
func readNumber(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, fmt.Errorf("missing value")
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", jval)
	}
}
