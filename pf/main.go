// Command pf builds ledger price histories from market-data providers.
//
// Shell completion is installed with COMP_INSTALL=1 pf.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pricefeed/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// exits when invoked by the shell for completion.
	cmd.Completion(commander).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
