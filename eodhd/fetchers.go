package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/etnz/pricefeed"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// endpoint returns the address of an API endpoint for ticker.
func (c *Client) endpoint(api, ticker string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("fmt", "json")
	query.Set("api_token", c.apiKey)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, api, url.PathEscape(ticker), query.Encode())
}

// rangeQuery returns the from/to parameters for r, bounds are included.
func rangeQuery(r pricefeed.Range) url.Values {
	query := url.Values{}
	if !r.From.IsZero() {
		query.Set("from", r.From.String())
	}
	query.Set("to", r.To.String())
	return query
}

// eodPrice is one day of the api/eod endpoint.
//
//	{
//		"date": "2024-02-13",
//		"open": 675.066,
//		"high": 684.219,
//		"low": 648.659,
//		"close": 668.445,
//		"adjusted_close": 67.705,
//		"volume": 0
//	}
type eodPrice struct {
	Date  pricefeed.Date  `json:"date"`
	Open  decimal.Decimal `json:"open"`
	Close decimal.Decimal `json:"close"`
}

func (c *Client) fetchPrices(ctx context.Context, ticker string, r pricefeed.Range) ([]eodPrice, error) {
	content := make([]eodPrice, 0)
	if err := pricefeed.GetJSON(ctx, c.httpClient, c.endpoint("eod", ticker, rangeQuery(r)), &content); err != nil {
		return nil, err
	}
	return content, nil
}

// History returns the daily closing prices of ticker within r.
//
// The close column is not adjusted for splits.
func (c *Client) History(ctx context.Context, ticker string, r pricefeed.Range) ([]pricefeed.Observation, error) {
	if strings.HasSuffix(ticker, ".FOREX") {
		return c.forexHistory(ctx, ticker, r)
	}
	content, err := c.fetchPrices(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	history := make([]pricefeed.Observation, 0, len(content))
	for _, info := range content {
		history = append(history, pricefeed.Observation{Date: info.Date, Price: info.Close, Commodity: ticker})
	}
	slices.SortStableFunc(history, func(a, b pricefeed.Observation) int { return a.Date.Compare(b.Date) })
	return history, nil
}

// forexHistory returns the daily rates of a currency pair within r.
//
// eodhd forex close value is probably buggy and equal to the open most of the
// time. Instead the open of the next day is the closer to the truth, so be it.
func (c *Client) forexHistory(ctx context.Context, ticker string, r pricefeed.Range) ([]pricefeed.Observation, error) {
	shifted := pricefeed.NewRange(r.From, r.To.Add(1))
	if !r.From.IsZero() {
		shifted.From = r.From.Add(1)
	}
	content, err := c.fetchPrices(ctx, ticker, shifted)
	if err != nil {
		return nil, err
	}
	history := make([]pricefeed.Observation, 0, len(content))
	for _, info := range content {
		history = append(history, pricefeed.Observation{Date: info.Date.Add(-1), Price: info.Open, Commodity: ticker})
	}
	slices.SortStableFunc(history, func(a, b pricefeed.Observation) int { return a.Date.Compare(b.Date) })
	return history, nil
}

// Quote returns the latest price of ticker from the api/real-time endpoint.
//
//	{
//		"code": "MCD.US",
//		"timestamp": 1718395201,
//		"gmtoffset": 0,
//		"open": 254.59,
//		"close": 256.3,
//		"previousClose": 254.94
//	}
func (c *Client) Quote(ctx context.Context, ticker string) (pricefeed.Observation, error) {
	var jobj map[string]any
	if err := pricefeed.GetJSON(ctx, c.httpClient, c.endpoint("real-time", ticker, nil), &jobj); err != nil {
		return pricefeed.Observation{}, err
	}

	price, err := readNumber(jobj["close"])
	if err != nil {
		// the api uses "NA" when there was no trade yet, fall back to the previous close
		price, err = readNumber(jobj["previousClose"])
		if err != nil {
			return pricefeed.Observation{}, fmt.Errorf("cannot read the price of %q: %w", ticker, err)
		}
	}
	ts, err := readNumber(jobj["timestamp"])
	if err != nil {
		return pricefeed.Observation{}, fmt.Errorf("cannot read the timestamp of %q: %w", ticker, err)
	}
	offset, err := readNumber(jobj["gmtoffset"])
	if err != nil {
		offset = decimal.Zero
	}
	loc := time.FixedZone(ticker, int(offset.IntPart()))
	return pricefeed.Observation{
		Date:      pricefeed.DateOf(time.Unix(ts.IntPart(), 0).In(loc)),
		Price:     price,
		Commodity: ticker,
	}, nil
}

// Splits returns the split history of ticker within r.
//
//	[{"date": "2014-06-09", "split": "7.000000/1.000000"}]
func (c *Client) Splits(ctx context.Context, ticker string, r pricefeed.Range) ([]pricefeed.Split, error) {
	type apiSplit struct {
		Date  pricefeed.Date `json:"date"`
		Split string         `json:"split"`
	}

	content := make([]apiSplit, 0)
	if err := pricefeed.GetJSON(ctx, c.httpClient, c.endpoint("splits", ticker, rangeQuery(r)), &content); err != nil {
		return nil, err
	}

	splits := make([]pricefeed.Split, 0, len(content))
	for _, s := range content {
		parts := strings.Split(s.Split, "/")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid split format from API: %q", s.Split)
		}

		numDecimal, err := decimal.NewFromString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid numerator in split %q: %w", s.Split, err)
		}
		denDecimal, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid denominator in split %q: %w", s.Split, err)
		}

		num, den := simplifyDecimalRatio(numDecimal, denDecimal)
		if num <= 0 || den <= 0 {
			return nil, fmt.Errorf("invalid split ratio from API: %q", s.Split)
		}
		splits = append(splits, pricefeed.NewSplit(s.Date, num, den))
	}
	slices.SortFunc(splits, func(a, b pricefeed.Split) int { return a.Date.Compare(b.Date) })
	return splits, nil
}
