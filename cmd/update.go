package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/etnz/pricefeed"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type updateCmd struct {
	config    string
	schedule  string
	overwrite bool
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "updates the ledger files of every commodity of a configuration file"
}
func (*updateCmd) Usage() string {
	return `pf update [-config pricefeed.yaml] [-schedule "<cron spec>"]

Runs 'pf fetch' for every commodity listed in the configuration file:

  provider: yahoo          # or eodhd
  output: prices           # directory of the ledger files, defaults to -o
  schedule: "0 22 * * 1-5" # optional, see -schedule
  commodities:
    - commodity: NVDA
      split: ["4:1,2021-07-20", "10:1,2024-06-10"]
      latest-price: true
    - commodity: VWCE
      yahooticker: VWCE.DE
      currency: EUR
      begin: 2020-01-01

With a schedule, the update is repeated on that cron spec until interrupted.

Options:
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "pricefeed.yaml", "Path to the configuration file")
	f.StringVar(&c.schedule, "schedule", "", "Cron spec to repeat the update, overrides the configuration file")
	f.BoolVar(&c.overwrite, "overwrite", false, "Replace the ledger files instead of merging into them")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: no arguments expected")
		return subcommands.ExitUsageError
	}

	batch, err := c.readBatch()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := newProvider(batch.Provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	dir := batch.Output
	if dir == "" {
		dir = *outputDir
	}

	schedule := batch.Schedule
	if c.schedule != "" {
		schedule = c.schedule
	}
	if schedule == "" {
		if err := c.runOnce(ctx, p, batch, dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.Default()))))
	if _, err := scheduler.AddFunc(schedule, func() {
		if err := c.runOnce(ctx, p, batch, dir); err != nil {
			log.Printf("update failed: %v", err)
		}
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", schedule, err)
		return subcommands.ExitUsageError
	}
	log.Printf("updating %d commodities on %q, press Ctrl+C to stop", len(batch.Commodities), schedule)
	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	return subcommands.ExitSuccess
}

// readBatch reads the configuration file.
func (c *updateCmd) readBatch() (*pricefeed.Batch, error) {
	f, err := os.Open(c.config)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	batch, err := pricefeed.DecodeBatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.config, err)
	}
	return batch, nil
}

// runOnce updates every commodity of batch. A failure on one commodity does
// not prevent the others from being updated.
func (c *updateCmd) runOnce(ctx context.Context, p pricefeed.Provider, batch *pricefeed.Batch, dir string) error {
	var errs []error
	for _, cfg := range batch.Commodities {
		written, err := fetchOne(ctx, p, cfg, dir, c.overwrite)
		var empty *pricefeed.EmptySeriesError
		switch {
		case errors.As(err, &empty):
			log.Printf("warning, %v: nothing written", err)
		case err != nil:
			log.Printf("%s: %v", cfg.Commodity, err)
			errs = append(errs, fmt.Errorf("%s: %w", cfg.Commodity, err))
		default:
			fmt.Printf("✅ %s: %d prices written to %s\n", cfg.Commodity, len(written), ledgerPath(dir, cfg.Commodity))
		}
	}
	return errors.Join(errs...)
}
