package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/internal/server"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// serveCommand runs the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

  GET  /health
  POST /api/render?format=svg&kind=donut   body: JSON item tree
  POST /api/tooltip?x=120&y=80             body: JSON item tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			s := server.New(store, logger, optionsFromConfig(c.cfg))
			defer s.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           s,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serveUntilDone(ctx, srv, func() {
				printSuccess("Listening on %s", addr)
				printNextStep("Try", "curl -X POST --data @chart.json http://localhost"+addr+"/api/render")
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// serveUntilDone runs srv until ctx is cancelled, then shuts it down.
func serveUntilDone(ctx context.Context, srv *http.Server, started func()) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	if started != nil {
		started()
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
