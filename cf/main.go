// Command cf manages the books of a community fund.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/communityfund/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Handles shell completion requests (COMP_LINE) and exits, does nothing otherwise.
	completion().Complete("cf")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	// Unknown subcommands are delegated to cf-<name> extensions.
	if name := flag.Arg(0); name != "" && !registered(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion describes the cf command line for shell completion.
func completion() *complete.Command {
	months := predict.Set{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	flagPredictors := map[string]complete.Predictor{
		"m":      months,
		"format": predict.Set{"term", "md", "json"},
	}

	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{"env": predict.Files("*")},
	}
	for _, c := range cmd.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			p, ok := flagPredictors[f.Name]
			if b, isBool := f.Value.(interface{ IsBoolFlag() bool }); isBool && b.IsBoolFlag() {
				p, ok = predict.Nothing, true
			}
			if !ok {
				p = predict.Something
			}
			sub.Flags[f.Name] = p
		})
		root.Sub[c.Name()] = sub
	}
	return root
}
