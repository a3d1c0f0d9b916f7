// Package eodhd gets daily prices, live quotes and splits from the EODHD API.
//
// See https://eodhd.com/financial-apis/ for the API documentation. Tickers
// are in the form "SYMBOL.EXCHANGE", like "MCD.US" or "EURUSD.FOREX".
package eodhd

import (
	"github.com/etnz/pricefeed"
)

const baseURL = "https://eodhd.com/api"

// Client is a client for the EODHD API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient pricefeed.Doer
}

// Option is a configuration option for the EODHD client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient pricefeed.Doer) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a new EODHD client authenticated with apiKey.
//
// Responses are cached on disk for the day unless another HTTP client is set.
func New(apiKey string, options ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: pricefeed.NewCachingClient(pricefeed.Daily, ""),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Name returns the provider name.
func (c *Client) Name() string { return "eodhd" }

var (
	_ pricefeed.Provider    = (*Client)(nil)
	_ pricefeed.SplitLister = (*Client)(nil)
)
