// Package cmd implements the cf command line application to manage a community fund.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	fund "github.com/etnz/communityfund"
	"github.com/etnz/communityfund/config"
	"github.com/etnz/communityfund/seed"
	"github.com/etnz/communityfund/storage"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// Commands is the list of cf subcommands.
var Commands = []subcommands.Command{
	&showCmd{},
	&addCmd{},
	&editCmd{},
	&rmCmd{},
	&resetCmd{},
	&topicCmd{},
	&serveCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var envFile = flag.String("env", ".env", "Path to an optional env file with the FUND_* settings")

// app is what every command needs: the configuration, a logger and the open fund.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	fund   *fund.Fund
	close  func() error
}

// openApp loads the configuration and opens the fund it designates.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	sink, closeSink, err := openSink(ctx, cfg)
	if err != nil {
		return nil, err
	}
	f := fund.Open(ctx, fund.Options{
		Sink:   sink,
		Seeds:  openSeeds(ctx, cfg),
		IDs:    fund.RandomIDs(),
		Strict: cfg.Strict,
		Logger: logger,
	})
	return &app{cfg: cfg, logger: logger, fund: f, close: closeSink}, nil
}

// Close releases the storage.
func (a *app) Close() {
	if err := a.close(); err != nil {
		a.logger.Warn("could not close storage", "error", err)
	}
}

// warnDegraded prints why the fund could not be loaded, if it could not.
func (a *app) warnDegraded() {
	if err := a.fund.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func openSink(ctx context.Context, cfg *config.Config) (fund.Sink, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store {
	case config.StoreFile:
		return storage.NewFile(cfg.File), noop, nil
	case config.StoreSQLite:
		s, err := storage.NewSQLite(cfg.SQLitePath, "")
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoreSheets:
		s, err := storage.NewSheets(ctx, cfg.SheetID, cfg.SheetRange, cfg.Credentials)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.StoreMemory:
		return &storage.Memory{}, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// openSeeds returns the configured seed provider. A provider that cannot be
// created fails when seeds are actually needed.
func openSeeds(ctx context.Context, cfg *config.Config) fund.SeedProvider {
	switch cfg.Seed {
	case config.SeedGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey, Backend: genai.BackendGeminiAPI})
		if err != nil {
			return failedSeeds{fmt.Errorf("gemini client: %w", err)}
		}
		return seed.NewGemini(client, cfg.GeminiModel)
	case config.SeedFile:
		return seed.NewFile(cfg.SeedFile)
	case config.SeedSample:
		return seed.Sample()
	}
	return nil
}

type failedSeeds struct{ err error }

func (s failedSeeds) FetchSeedRecords(context.Context) ([]fund.Draft, error) { return nil, s.err }

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// exitStatus prints err and maps it to an exit status.
func exitStatus(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, fund.ErrDraftInvalid) || errors.Is(err, fund.ErrReconciliationInputInvalid) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// splitContributors parses a comma separated list of names, blank names are dropped.
func splitContributors(s string) []string {
	names := []string{}
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
