package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/internal/config"
	"github.com/matzehuels/diagramkit/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis, layout and export API over HTTP",
		Long: `Serve the analysis, layout and export API over HTTP.

Routes:
  POST /v1/analyze   analysis report for a diagram
  POST /v1/layout    positioned diagram
  POST /v1/export    exported artifact
  GET  /v1/kinds     supported analyses, algorithms, formats and shapes
  GET  /healthz      liveness

Limits and the cache backend come from the [server] and [cache] sections of
the config file. A file cache backend is replaced by the in-memory cache
unless --cache says otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			switch {
			case backend != "":
				c.Config.Cache.Backend = backend
			case c.Config.Cache.Backend == config.BackendFile:
				c.Config.Cache.Backend = config.BackendMemory
			}
			if _, err := c.Config.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&backend, "cache", "", "cache backend: none, memory, file, redis")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: "+config.DefaultAddr+")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, server.Config{
		Timeout:      c.Config.Server.Timeout,
		MaxShapes:    c.Config.Server.MaxShapes,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Defaults:     c.Config.PipelineOptions(),
	}, c.Logger)

	printInfo("Serving on %s (cache: %s)", addr, c.Config.Cache.Backend)
	return srv.ListenAndServe(ctx, addr)
}
