// Package cmd implements the CLI application to build ledger price histories.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pricefeed"
	"github.com/etnz/pricefeed/eodhd"
	"github.com/etnz/pricefeed/yahoo"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package will register them, and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&showCmd{},
	&splitsCmd{},
	&updateCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var outputDir = flag.String("o", ".", "Directory where <commodity>.ledger files are written")
var noCache = flag.Bool("no-cache", false, "Do not cache provider responses on disk")
var cacheDir = flag.String("cache-dir", "", "Directory for cached provider responses (default: user cache directory)")
var eodhdAPIKeyFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+eodhdAPIKeyEnv+" environment variable. You can get one at https://eodhd.com/")

const eodhdAPIKeyEnv = "EODHD_API_KEY"

// today returns the first day not covered by fetched prices.
var today = pricefeed.Today

// eodhdAPIKey retrieves the EODHD API key from the command-line flag or the environment variable.
// It prioritizes the flag over the environment variable.
func eodhdAPIKey() string {
	if *eodhdAPIKeyFlag != "" {
		return *eodhdAPIKeyFlag
	}
	return os.Getenv(eodhdAPIKeyEnv)
}

// providerNames are the accepted values of the -provider flag.
var providerNames = []string{"yahoo", "eodhd"}

// newProvider returns the market-data provider called name.
var newProvider = func(name string) (pricefeed.Provider, error) {
	var client pricefeed.Doer = http.DefaultClient
	if !*noCache {
		client = pricefeed.NewCachingClient(pricefeed.Daily, *cacheDir)
	}
	switch name {
	case "", "yahoo":
		return yahoo.New(yahoo.WithHTTPClient(client)), nil
	case "eodhd":
		key := eodhdAPIKey()
		if key == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", eodhdAPIKeyEnv)
		}
		return eodhd.New(key, eodhd.WithHTTPClient(client)), nil
	default:
		return nil, fmt.Errorf("unknown provider %q, want one of %s", name, strings.Join(providerNames, ", "))
	}
}

// splitList is a repeatable flag of split declarations.
type splitList []pricefeed.Split

func (s *splitList) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(*s))
	for i, split := range *s {
		parts[i] = split.String()
	}
	return strings.Join(parts, ", ")
}

func (s *splitList) Set(value string) error {
	splits, err := pricefeed.ParseSplits(value)
	if err != nil {
		return err
	}
	*s = append(*s, splits...)
	return nil
}

// pipelineFlags are the flags describing a single commodity.
type pipelineFlags struct {
	commodity   string
	yahooTicker string
	begin       string
	splits      splitList
	currency    string
	latestPrice bool
	provider    string
}

func (p *pipelineFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.commodity, "commodity", "", "Commodity symbol written in the ledger (required)")
	f.StringVar(&p.yahooTicker, "yahooticker", "", "Provider ticker, when it differs from the commodity symbol")
	f.StringVar(&p.begin, "begin", "", "Ignore prices before this date (YYYY-MM-DD or relative like -5y)")
	f.Var(&p.splits, "split", "Split declaration N:M,YYYY-MM-DD (repeatable, or a \", \" separated list)")
	f.StringVar(&p.currency, "currency", pricefeed.DefaultCurrency, "Currency symbol or ISO code printed before prices")
	f.BoolVar(&p.latestPrice, "latest-price", false, "Append the latest quote after the last month-end close")
	f.StringVar(&p.provider, "provider", "yahoo", "Market-data provider: "+strings.Join(providerNames, ", "))
}

// config returns the pipeline configuration described by the flags.
func (p *pipelineFlags) config() (pricefeed.Config, error) {
	cfg := pricefeed.Config{
		Commodity:   p.commodity,
		Ticker:      p.yahooTicker,
		Splits:      p.splits,
		Currency:    p.currency,
		LatestPrice: p.latestPrice,
	}
	if p.begin != "" {
		on, err := pricefeed.ParseDate(p.begin)
		if err != nil {
			return cfg, &pricefeed.ConfigurationError{Token: p.begin, Err: err}
		}
		cfg.Begin = on
	}
	return cfg, cfg.Validate()
}

// ledgerPath returns the ledger file of commodity in dir.
func ledgerPath(dir, commodity string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(commodity)
	return filepath.Join(dir, name+".ledger")
}

// writeLedger writes series to the ledger file of cfg's commodity in dir and
// returns the records written.
//
// Unless overwrite is set, the existing records dated before series are kept.
func writeLedger(dir string, cfg pricefeed.Config, series pricefeed.Series, overwrite bool) (pricefeed.Series, error) {
	path := ledgerPath(dir, cfg.Commodity)
	records := series
	if !overwrite {
		existing, err := readLedger(path)
		if err != nil {
			return nil, err
		}
		records = pricefeed.MergePrices(existing, series)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// write to a temporary file first, so that a failure does not leave a truncated ledger.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if err := pricefeed.EncodePrices(tmp, records, cfg.CurrencySymbol()); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}
	return records, nil
}

// readLedger reads the price records of an existing ledger file. A missing
// file has no records.
func readLedger(path string) (pricefeed.Series, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	series, _, err := pricefeed.DecodePrices(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return series, nil
}

// printMarkdown renders md for the terminal, or prints it verbatim when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Printf("warning, cannot render markdown: %v", err)
	fmt.Print(md)
}
