package pricefeed

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is the currency prefix used in ledger price lines when none is configured.
const DefaultCurrency = "$"

// CurrencySymbol returns the prefix to print before prices for currency.
//
// ISO 4217 codes known to go-money resolve to their symbol ("EUR" is "€"),
// anything else is used verbatim, so "$", "R$" or "EUR " are all valid. An
// empty currency is the DefaultCurrency.
func CurrencySymbol(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}
	code := strings.ToUpper(currency)
	if len(code) == 3 && code == currency {
		if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
			return c.Grapheme
		}
	}
	return currency
}
