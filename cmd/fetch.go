package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/pricefeed"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	pipelineFlags
	overwrite bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches monthly prices of a commodity into its ledger file" }
func (*fetchCmd) Usage() string {
	return `pf fetch -commodity <symbol> [options]

Fetches the daily price history of a commodity from a market-data provider,
adjusts it for the declared stock splits, keeps the last price of every
closed month and writes them as price directives to <commodity>.ledger:

  P 2023-01-31 "NVDA" $19.5

Splits are declared as N:M,YYYY-MM-DD, meaning that from that date on each
share became N/M shares. Prices before the split are divided by N/M.

  pf fetch -commodity NVDA -split 4:1,2021-07-20 -split 10:1,2024-06-10

Existing records dated before the first fetched month are kept, use
-overwrite to replace the whole file.

The eodhd provider requires an API key set via the -eodhd-api-key flag or
the EODHD_API_KEY environment variable.

Options:
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	c.pipelineFlags.SetFlags(f)
	f.BoolVar(&c.overwrite, "overwrite", false, "Replace the ledger file instead of merging into it")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	p, err := newProvider(c.provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	written, err := fetchOne(ctx, p, cfg, *outputDir, c.overwrite)
	var empty *pricefeed.EmptySeriesError
	if errors.As(err, &empty) {
		log.Printf("warning, %v: nothing written", err)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := pricefeed.EncodePrices(os.Stdout, written, cfg.CurrencySymbol()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ %d prices written to %s\n", len(written), ledgerPath(*outputDir, cfg.Commodity))
	return subcommands.ExitSuccess
}

// fetchOne runs the pipeline for cfg and writes the result to the
// commodity's ledger file in dir.
//
// On an *pricefeed.EmptySeriesError the ledger file is left untouched.
func fetchOne(ctx context.Context, p pricefeed.Provider, cfg pricefeed.Config, dir string, overwrite bool) (pricefeed.Series, error) {
	series, err := pricefeed.Run(ctx, p, cfg, today())
	if err != nil {
		return nil, err
	}
	if missing, err := pricefeed.MissingSplits(ctx, p, cfg, today()); err != nil {
		log.Printf("warning, cannot check the splits of %s: %v", cfg.Commodity, err)
	} else {
		for _, s := range missing {
			log.Printf("warning, %s reports a split not declared for %s: -split %s", p.Name(), cfg.Commodity, s)
		}
	}
	return writeLedger(dir, cfg, series, overwrite)
}
