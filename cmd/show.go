package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/communityfund/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	format  string
	id      string
	noChart bool
	width   int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the fund dashboard" }
func (*showCmd) Usage() string {
	return `cf show [-format term|md|json] [-id <id>] [-no-chart]

  Displays the summary, the monthly chart and the records of the fund.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "term", "Output format: term, md (raw markdown) or json")
	f.StringVar(&c.id, "id", "", "Show a single record")
	f.BoolVar(&c.noChart, "no-chart", false, "Do not draw the monthly chart")
	f.IntVar(&c.width, "w", 40, "Width of the chart")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "term" && c.format != "md" && c.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	a.warnDegraded()

	var (
		data any
		md   string
	)
	if c.id != "" {
		r, ok := a.fund.Get(c.id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: record %q not found\n", c.id)
			return subcommands.ExitFailure
		}
		data, md = r, renderer.Record(r)
	} else {
		v := a.fund.View()
		data, md = v, renderer.Dashboard(v, renderer.DashboardOptions{SkipChart: c.noChart, Width: c.width})
	}

	switch c.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case "md":
		fmt.Print(md)
	default:
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
