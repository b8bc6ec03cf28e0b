package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type resetCmd struct{}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "replace the fund with fresh seed data" }
func (*resetCmd) Usage() string {
	return `cf reset

  Forgets the stored fund and loads new records from the seed provider
  (FUND_SEED). All changes are lost.
`
}

func (*resetCmd) SetFlags(f *flag.FlagSet) {}

func (*resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.fund.Reset(ctx, a.cfg.User()); err != nil {
		return exitStatus(err)
	}
	fmt.Printf("Fund reset with %d records\n", len(a.fund.View().Records))
	return subcommands.ExitSuccess
}
