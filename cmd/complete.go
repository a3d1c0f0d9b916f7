package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands registered in commander, and their flags,
// for shell completion.
func Completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: predictFlags(f)}
		switch c.Name() {
		case "help", "flags":
			sub.Args = predict.Set(commandNames(commander))
		case "splits":
			sub.Args = predict.Something
		}
		root.Sub[c.Name()] = sub
	})
	return root
}

// predictFlags returns a predictor for each flag of f.
func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		flags[fl.Name] = predictFlag(fl)
	})
	return flags
}

func predictFlag(fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "provider":
		return predict.Set(providerNames)
	case "config":
		return predict.Files("*.yaml")
	case "o", "cache-dir":
		return predict.Dirs("*")
	default:
		return predict.Something
	}
}

func commandNames(commander *subcommands.Commander) []string {
	var names []string
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		names = append(names, c.Name())
	})
	return names
}
