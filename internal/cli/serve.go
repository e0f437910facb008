package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bricklayer/internal/server"
	"github.com/matzehuels/bricklayer/pkg/cache"
)

// serverKeyPrefix scopes the server's cache entries so that a shared Redis
// can tell them apart from CLI runs.
const serverKeyPrefix = "server:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg     server.Config
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pattern and planning pipeline over HTTP",
		Long: `Serve the pattern and planning pipeline over HTTP.

Routes:
  GET  /healthz      liveness and version
  GET  /v1/bonds     registered bond names
  POST /v1/pattern   wall config (TOML) in, pattern text out
  POST /v1/steps     wall config (TOML) in, instructions text out
  POST /v1/render    wall config (TOML) in, SVG out

Set BRICKLAYER_REDIS_URL to share the cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache, cache.NewScopedKeyer(nil, serverKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			return server.New(runner, c.Logger, cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", server.DefaultTimeout, "request read timeout")
	cmd.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", server.DefaultTimeout, "response write timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
