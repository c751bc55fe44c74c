package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgecross/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags metricFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the crossing metric over HTTP",
		Long: `Serve starts the HTTP API. Results are cached and stored with the configured
backends. Counting flags set the defaults that request query parameters can
override.

  POST /api/v1/crossings         compute the metric for a document
  POST /api/v1/crossings/local   crossings of ?node= (and ?other=)
  GET  /api/v1/results           list stored results
  GET  /api/v1/results/{id}      fetch a stored result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(context.WithoutCancel(ctx))

			srv := server.New(runner, server.Options{Defaults: defaults, Logger: c.Logger})
			printInfo("Serving on %s", StyleLink.Render(serverURL(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// serverURL turns a listen address into a clickable URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
