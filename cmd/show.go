package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/pricefeed"
	"github.com/etnz/pricefeed/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	pipelineFlags
	plain bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "displays monthly prices of a commodity without writing them" }
func (*showCmd) Usage() string {
	return `pf show -commodity <symbol> [options]

Runs the same pipeline as 'pf fetch' and displays the resulting monthly prices
as a table, with the month over month change. Nothing is written.

Options:
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	c.pipelineFlags.SetFlags(f)
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	series, err := pricefeed.Run(ctx, p, cfg, today())
	var empty *pricefeed.EmptySeriesError
	if errors.As(err, &empty) {
		log.Printf("warning, %v", err)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.SeriesMarkdown(cfg.Commodity, series, cfg.CurrencySymbol(), cfg.Splits)
	if c.plain {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
