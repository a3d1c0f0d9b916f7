package pricefeed

import "context"

// Provider is a source of market data.
type Provider interface {
	Name() string
	// History returns the daily closing prices of ticker within r. The
	// Commodity field of the returned observations is not significant.
	History(ctx context.Context, ticker string, r Range) ([]Observation, error)
	// Quote returns the most recent price of ticker.
	Quote(ctx context.Context, ticker string) (Observation, error)
}

// SplitLister is implemented by providers that know the split history of a ticker.
type SplitLister interface {
	Splits(ctx context.Context, ticker string, r Range) ([]Split, error)
}
