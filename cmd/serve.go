package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/communityfund/server"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the fund over HTTP" }
func (*serveCmd) Usage() string {
	return `cf serve [-addr <host:port>]

  Serves the JSON API (/api/fund, /api/records, /api/reset) and a markdown
  dashboard (/dashboard). The caller's role is read from the X-Fund-Role header.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, defaults to FUND_ADDR")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	a.warnDegraded()

	addr := c.addr
	if addr == "" {
		addr = a.cfg.Addr
	}
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(a.fund, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.logger.Info("serving fund", "addr", addr, "store", a.cfg.Store)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			a.logger.Error("shutdown failed", "error", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
