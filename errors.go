package pricefeed

import "fmt"

// ConfigurationError reports an invalid user setting, like a malformed split
// declaration. Token is the offending user input.
type ConfigurationError struct {
	Token string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %v", e.Token, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DataFetchError reports a failure to get prices from a market-data provider.
type DataFetchError struct {
	Provider string
	Ticker   string
	Err      error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("cannot fetch %q from %s: %v", e.Ticker, e.Provider, e.Err)
}

func (e *DataFetchError) Unwrap() error { return e.Err }

// EmptySeriesError reports that a provider answered without any price.
//
// It is not fatal: the series returned alongside is simply empty.
type EmptySeriesError struct {
	Provider string
	Ticker   string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("%s has no price for %q", e.Provider, e.Ticker)
}
