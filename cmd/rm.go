package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct {
	revision int64
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a month from the fund" }
func (*rmCmd) Usage() string {
	return `cf rm [-rev <revision>] <id>...

  Removes records. Balances of the following months are recomputed.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.revision, "rev", 0, "Fail if the record was changed since this revision")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: rm takes at least one record id")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	a.warnDegraded()

	for _, id := range f.Args() {
		if err := a.fund.Delete(ctx, a.cfg.User(), id, c.revision); err != nil {
			return exitStatus(err)
		}
		fmt.Printf("Removed %s\n", id)
	}
	return subcommands.ExitSuccess
}
