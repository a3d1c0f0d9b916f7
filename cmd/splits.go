package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pricefeed"
	"github.com/google/subcommands"
)

type splitsCmd struct {
	provider string
	begin    string
}

func (*splitsCmd) Name() string     { return "splits" }
func (*splitsCmd) Synopsis() string { return "lists the splits known by the provider" }
func (*splitsCmd) Usage() string {
	return `pf splits [-provider <name>] <ticker...>

Lists the stock splits of each ticker as reported by the provider, in the
syntax of the -split flag, so they can be copied in a fetch command or a
configuration file.

Options:
`
}

func (c *splitsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", "yahoo", "Market-data provider: "+strings.Join(providerNames, ", "))
	f.StringVar(&c.begin, "begin", "", "Ignore splits before this date")
}

func (c *splitsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker must be specified.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	var begin pricefeed.Date
	if c.begin != "" {
		on, err := pricefeed.ParseDate(c.begin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		begin = on
	}

	p, err := newProvider(c.provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	lister, ok := p.(pricefeed.SplitLister)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s cannot list splits\n", p.Name())
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		splits, err := lister.Splits(ctx, ticker, pricefeed.NewRange(begin, today()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", &pricefeed.DataFetchError{Provider: p.Name(), Ticker: ticker, Err: err})
			status = subcommands.ExitFailure
			continue
		}
		if len(splits) == 0 {
			fmt.Printf("%s: no splits\n", ticker)
			continue
		}
		args := make([]string, len(splits))
		for i, s := range splits {
			args[i] = "-split " + s.String()
		}
		fmt.Printf("%s: %s\n", ticker, strings.Join(args, " "))
	}
	return status
}
