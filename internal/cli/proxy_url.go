package cli

import (
	"fmt"

	"gemini-agent/internal/infrastructure/notebook"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newProxyURLCmd(deps Deps) *cobra.Command {
	var runtimeDir string

	cmd := &cobra.Command{
		Use:   "proxy-url",
		Short: "Print the proxied web UI address inside a hosted notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.loadEnv()

			dir := runtimeDir
			if dir == "" && deps.RuntimeDir != nil {
				dir = deps.RuntimeDir()
			}
			if dir == "" {
				dir = notebook.RuntimeDir()
			}

			proxy, err := notebook.DiscoverProxyURL(dir)
			if err != nil {
				return fmt.Errorf("resolve proxy url: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, proxy.Prefix)
			fmt.Fprintln(out, proxy.URL)

			yellow := color.New(color.FgYellow)
			yellow.Fprintf(out, "The web UI is not running yet. Start it with `adkctl web --port %s` before opening the link.\n", notebook.WebPort)
			return nil
		},
	}

	cmd.Flags().StringVar(&runtimeDir, "runtime-dir", "", "Jupyter runtime directory (default from JUPYTER_RUNTIME_DIR)")
	return cmd
}
