package cli

import (
	"fmt"

	"gemini-agent/internal/infrastructure/web"

	"github.com/spf13/cobra"
)

func newWebCmd(deps Deps) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the dev web endpoint for the agent runner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDep(deps.Runners != nil && deps.Logger != nil, "runner provider"); err != nil {
				return err
			}

			deps.loadEnv()

			r, err := deps.Runners.EnsureRunner(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize agent runner: %w", err)
			}

			cfg := web.DefaultConfig()
			cfg.Addr = fmt.Sprintf(":%d", port)
			srv, err := web.NewServer(cfg, r, deps.Logger)
			if err != nil {
				return err
			}

			printSuccess(cmd, "Serving %s on http://localhost:%d", r.AppName(), port)
			// interrupt is the normal way to stop the server; ListenAndServe
			// returns nil once the context is done
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	return cmd
}
