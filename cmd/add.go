package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/communityfund/renderer"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	recordFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a month to the fund" }
func (*addCmd) Usage() string {
	return `cf add -m <month> -c <names> -collected <amount> [-given <amount> | -d <recipient=amount>...]

  Adds a record. Month, contributors and amount collected are required.
  When distributions are given, the amount given is their sum.
`
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := c.draft(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if d.Contributors == nil {
		d.Contributors = []string{}
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	a.warnDegraded()

	r, err := a.fund.Create(ctx, a.cfg.User(), d)
	if err != nil {
		return exitStatus(err)
	}
	printMarkdown(renderer.Record(r))
	return subcommands.ExitSuccess
}
