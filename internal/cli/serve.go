package cli

import (
	"github.com/spf13/cobra"

	"github.com/cascadevis/cascade/internal/server"
	"github.com/cascadevis/cascade/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP render API.
// Server settings come from CASCADE_* environment variables; --addr
// overrides the listen address for convenience.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			artifactCache, err := cfg.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			defer artifactCache.Close()

			runner := pipeline.NewRunner(artifactCache, nil, c.Logger)
			return server.New(cfg, runner, c.Logger).ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides CASCADE_ADDR)")

	return cmd
}
