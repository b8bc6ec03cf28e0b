package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/communityfund/renderer"
	"github.com/google/subcommands"
)

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	recordFlags
	revision int64
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a month of the fund" }
func (*editCmd) Usage() string {
	return `cf edit [flags] <id>

  Changes only the fields given as flags. -clear-d removes the itemized
  distributions so that -given applies again.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.recordFlags.SetFlags(f)
	f.BoolVar(&c.clear, "clear-d", false, "Remove the itemized distributions")
	f.Int64Var(&c.revision, "rev", 0, "Fail if the record was changed since this revision")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit takes exactly one record id")
		return subcommands.ExitUsageError
	}
	patch, err := c.draft(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	patch.Revision = c.revision

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	a.warnDegraded()

	r, err := a.fund.Update(ctx, a.cfg.User(), f.Arg(0), patch)
	if err != nil {
		return exitStatus(err)
	}
	printMarkdown(renderer.Record(r))
	return subcommands.ExitSuccess
}
