package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/pricefeed"
	"github.com/shopspring/decimal"
)

// pricePrecision is the number of decimals kept from Yahoo float prices.
const pricePrecision = 4

// ErrNoResult is returned when the chart API answers without any result.
var ErrNoResult = errors.New("no chart result")

// chartResponse is the subset of the chart API answer used here.
//
//	{"chart": {
//	  "result": [{
//	    "meta": {"currency": "USD", "symbol": "NVDA", "gmtoffset": -14400, "regularMarketPrice": 118.5, "regularMarketTime": 1718395201},
//	    "timestamp": [1717594200, ...],
//	    "events": {"splits": {"1718026200": {"date": 1718026200, "numerator": 10, "denominator": 1, "splitRatio": "10:1"}}},
//	    "indicators": {"quote": [{"close": [1224.4, null, ...]}]}
//	  }],
//	  "error": null
//	}}
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Currency  string `json:"currency"`
		Symbol    string `json:"symbol"`
		GMTOffset int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Splits map[string]struct {
			Date        int64   `json:"date"`
			Numerator   float64 `json:"numerator"`
			Denominator float64 `json:"denominator"`
		} `json:"splits"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *chartError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Description) }

// chartQuery returns the query parameters of a daily chart over r.
func chartQuery(r pricefeed.Range) url.Values {
	query := url.Values{}
	query.Set("interval", "1d")
	query.Set("events", "split")
	if r.From.IsZero() {
		query.Set("range", "max")
		return query
	}
	query.Set("period1", strconv.FormatInt(r.From.Time(time.UTC).Unix(), 10))
	// period2 is exclusive
	query.Set("period2", strconv.FormatInt(r.To.Add(1).Time(time.UTC).Unix(), 10))
	return query
}

// get performs the chart request for ticker and decodes the JSON answer into data.
func (c *Client) get(ctx context.Context, ticker string, query url.Values, data any) error {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ticker), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// the chart error is more explicit than the status
		var body chartResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Chart.Error != nil {
			return body.Chart.Error
		}
		return fmt.Errorf("unknown ticker %q", ticker)
	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limited")
	default:
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("decoding chart response: %w", err)
	}
	return nil
}

// chart returns the single result of a chart query.
func (c *Client) chart(ctx context.Context, ticker string, r pricefeed.Range) (*chartResult, error) {
	var body chartResponse
	if err := c.get(ctx, ticker, chartQuery(r), &body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, body.Chart.Error
	}
	if len(body.Chart.Result) == 0 {
		return nil, ErrNoResult
	}
	return &body.Chart.Result[0], nil
}

// History returns the daily closing prices of ticker within r, as they were
// quoted on each day.
//
// Yahoo scales closes before a split to the post-split share count. History
// scales them back using the split events of the answer, which only go up to
// r.To: query up to today to undo every split.
//
// Dates are expressed in the exchange time zone. Days without a close are skipped.
func (c *Client) History(ctx context.Context, ticker string, r pricefeed.Range) ([]pricefeed.Observation, error) {
	result, err := c.chart(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	var closes []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("got %d closes for %d timestamps", len(closes), len(result.Timestamp))
	}

	loc := time.FixedZone(result.Meta.Symbol, result.Meta.GMTOffset)
	splits := result.splits(loc)
	history := make([]pricefeed.Observation, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil || math.IsNaN(*closes[i]) {
			continue
		}
		day := pricefeed.DateOf(time.Unix(ts, 0).In(loc))
		if !r.Contains(day) {
			continue
		}
		price := decimal.NewFromFloat(*closes[i]).Round(pricePrecision)
		for _, s := range splits {
			if s.Date.After(day) {
				price = price.Mul(decimal.NewFromInt(s.Numerator)).Div(decimal.NewFromInt(s.Denominator))
			}
		}
		history = append(history, pricefeed.Observation{
			Date:      day,
			Price:     price,
			Commodity: ticker,
		})
	}
	slices.SortStableFunc(history, func(a, b pricefeed.Observation) int { return a.Date.Compare(b.Date) })
	return history, nil
}

// Splits returns the splits of ticker within r.
func (c *Client) Splits(ctx context.Context, ticker string, r pricefeed.Range) ([]pricefeed.Split, error) {
	result, err := c.chart(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	return result.splits(time.FixedZone(result.Meta.Symbol, result.Meta.GMTOffset)), nil
}

// splits returns the split events of the result, sorted by date.
func (r *chartResult) splits(loc *time.Location) []pricefeed.Split {
	var splits []pricefeed.Split
	for _, s := range r.Events.Splits {
		num, den := int64(math.Round(s.Numerator)), int64(math.Round(s.Denominator))
		if num <= 0 || den <= 0 {
			continue
		}
		day := pricefeed.DateOf(time.Unix(s.Date, 0).In(loc))
		splits = append(splits, pricefeed.NewSplit(day, num, den))
	}
	slices.SortFunc(splits, func(a, b pricefeed.Split) int { return a.Date.Compare(b.Date) })
	return splits
}

// Quote returns the latest traded price of ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (pricefeed.Observation, error) {
	query := url.Values{}
	query.Set("interval", "1d")
	query.Set("range", "1d")

	var jobj any
	if err := c.get(ctx, ticker, query, &jobj); err != nil {
		return pricefeed.Observation{}, err
	}
	if jerr, err := lookup(jobj, "$.chart.error.description"); err == nil && jerr != nil {
		return pricefeed.Observation{}, fmt.Errorf("%v", jerr)
	}

	price, err := lookupFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return pricefeed.Observation{}, err
	}
	ts, err := lookupFloat(jobj, "$.chart.result[0].meta.regularMarketTime")
	if err != nil {
		return pricefeed.Observation{}, err
	}
	offset, err := lookupFloat(jobj, "$.chart.result[0].meta.gmtoffset")
	if err != nil {
		offset = 0
	}
	loc := time.FixedZone(ticker, int(offset))
	return pricefeed.Observation{
		Date:      pricefeed.DateOf(time.Unix(int64(ts), 0).In(loc)),
		Price:     decimal.NewFromFloat(price).Round(pricePrecision),
		Commodity: ticker,
	}, nil
}

// lookup evaluates the jsonpath path on jobj.
func lookup(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, fmt.Errorf("no value at %q", path)
		}
		jval = jlist[0]
	}
	return jval, nil
}

// lookupFloat evaluates the jsonpath path on jobj and expects a number.
func lookupFloat(jobj any, path string) (float64, error) {
	jval, err := lookup(jobj, path)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: not a number %v", path, jval)
	}
	return val, nil
}

var (
	_ pricefeed.Provider    = (*Client)(nil)
	_ pricefeed.SplitLister = (*Client)(nil)
)
