package pricefeed

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config holds the options of a single pipeline run.
type Config struct {
	// Commodity is the symbol written in the ledger. Required.
	Commodity string
	// Ticker is the provider-side symbol, when it differs from Commodity.
	Ticker string
	// Begin filters out prices before that date. Zero means full history.
	Begin Date
	// Splits are applied to every price dated before them.
	Splits []Split
	// Currency is printed in front of prices. Defaults to DefaultCurrency.
	Currency string
	// LatestPrice appends the current quote after the last month-end close.
	LatestPrice bool
}

// ProviderTicker returns the symbol to query the provider with.
func (c Config) ProviderTicker() string {
	if c.Ticker != "" {
		return c.Ticker
	}
	return c.Commodity
}

// CurrencySymbol returns the configured currency prefix.
func (c Config) CurrencySymbol() string { return CurrencySymbol(c.Currency) }

// Mode returns the resampling mode matching LatestPrice.
func (c Config) Mode() ResampleMode {
	if c.LatestPrice {
		return ResampleMonthlyWithLatest
	}
	return ResampleMonthly
}

// Validate checks the configuration is complete.
func (c Config) Validate() error {
	if c.Commodity == "" {
		return &ConfigurationError{Token: "commodity", Err: errors.New("commodity is required")}
	}
	for _, s := range c.Splits {
		if s.Numerator <= 0 || s.Denominator <= 0 {
			return &ConfigurationError{Token: s.String(), Err: errors.New("split ratio terms must be positive")}
		}
	}
	return nil
}

// Batch is the content of a configuration file listing several commodities.
type Batch struct {
	Provider    string
	Output      string
	Schedule    string
	Commodities []Config
}

// DecodeBatch reads a YAML configuration file.
//
//	provider: yahoo
//	output: prices
//	schedule: "0 22 * * 1-5"
//	commodities:
//	  - commodity: NVDA
//	    split: ["4:1,2021-07-20", "10:1,2024-06-10"]
//	    latest-price: true
//	  - commodity: VWCE
//	    yahooticker: VWCE.DE
//	    currency: EUR
//	    begin: 2020-01-01
func DecodeBatch(r io.Reader) (*Batch, error) {
	// ycommodity is the object read from the file using the yaml parser.
	type ycommodity struct {
		Commodity   string   `yaml:"commodity"`
		YahooTicker string   `yaml:"yahooticker"`
		Begin       string   `yaml:"begin"`
		Split       []string `yaml:"split"`
		Currency    string   `yaml:"currency"`
		LatestPrice bool     `yaml:"latest-price"`
	}
	type ybatch struct {
		Provider    string       `yaml:"provider"`
		Output      string       `yaml:"output"`
		Schedule    string       `yaml:"schedule"`
		Commodities []ycommodity `yaml:"commodities"`
	}

	var yb ybatch
	if err := yaml.NewDecoder(r).Decode(&yb); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	batch := &Batch{Provider: yb.Provider, Output: yb.Output, Schedule: yb.Schedule}
	for i, yc := range yb.Commodities {
		cfg := Config{
			Commodity:   yc.Commodity,
			Ticker:      yc.YahooTicker,
			Currency:    yc.Currency,
			LatestPrice: yc.LatestPrice,
		}
		if yc.Begin != "" {
			on, err := ParseDate(yc.Begin)
			if err != nil {
				return nil, fmt.Errorf("commodity #%d %q: %w", i+1, yc.Commodity, &ConfigurationError{Token: yc.Begin, Err: err})
			}
			cfg.Begin = on
		}
		splits, err := ParseSplits(yc.Split...)
		if err != nil {
			return nil, fmt.Errorf("commodity #%d %q: %w", i+1, yc.Commodity, err)
		}
		cfg.Splits = splits
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("commodity #%d: %w", i+1, err)
		}
		batch.Commodities = append(batch.Commodities, cfg)
	}
	return batch, nil
}
