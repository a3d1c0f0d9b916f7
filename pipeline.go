package pricefeed

import (
	"context"
	"fmt"
	"log"
)

// Run fetches the price history described by cfg from p and turns it into a
// monthly, split-adjusted series ready to be encoded.
//
// today is the first day not covered by the history, months ending before it
// are closed.
//
// When p answers without any price, Run returns an empty series and an
// *EmptySeriesError.
func Run(ctx context.Context, p Provider, cfg Config, today Date) (Series, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Begin.After(today) {
		return nil, &ConfigurationError{Token: cfg.Begin.String(), Err: fmt.Errorf("begin is after %s", today)}
	}
	ticker := cfg.ProviderTicker()

	history, err := p.History(ctx, ticker, NewRange(cfg.Begin, today))
	if err != nil {
		return nil, &DataFetchError{Provider: p.Name(), Ticker: ticker, Err: err}
	}
	series := Series(history).WithCommodity(cfg.Commodity).Normalize().Since(cfg.Begin)

	if cfg.LatestPrice {
		quote, err := p.Quote(ctx, ticker)
		if err != nil {
			return nil, &DataFetchError{Provider: p.Name(), Ticker: ticker, Err: err}
		}
		quote.Commodity = cfg.Commodity
		if last, ok := series.Last(); !ok || !quote.Date.Before(last.Date) {
			series = series.Upsert(quote).Since(cfg.Begin)
		}
	}

	if len(series) == 0 {
		return Series{}, &EmptySeriesError{Provider: p.Name(), Ticker: ticker}
	}
	log.Printf("%s: %d daily prices from %s to %s", cfg.Commodity, len(series), series[0].Date, series[len(series)-1].Date)

	series = Adjust(series, cfg.Splits)
	return Resample(series, cfg.Mode(), today), nil
}

// MissingSplits returns the splits reported by p for cfg's ticker that are not declared in cfg.
//
// It returns nil when p cannot list splits.
func MissingSplits(ctx context.Context, p Provider, cfg Config, today Date) ([]Split, error) {
	lister, ok := p.(SplitLister)
	if !ok {
		return nil, nil
	}
	ticker := cfg.ProviderTicker()
	known, err := lister.Splits(ctx, ticker, NewRange(cfg.Begin, today))
	if err != nil {
		return nil, &DataFetchError{Provider: p.Name(), Ticker: ticker, Err: err}
	}
	declared := make(map[Split]bool, len(cfg.Splits))
	for _, s := range cfg.Splits {
		declared[NewSplit(s.Date, s.Numerator, s.Denominator)] = true
	}
	var missing []Split
	for _, s := range known {
		if !declared[NewSplit(s.Date, s.Numerator, s.Denominator)] {
			missing = append(missing, s)
		}
	}
	return missing, nil
}
