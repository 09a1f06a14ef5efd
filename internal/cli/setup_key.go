package cli

import (
	"fmt"
	"os"

	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

func newSetupKeyCmd(deps Deps) *cobra.Command {
	opts := env.DefaultSetupOptions()
	var noDotenv bool

	cmd := &cobra.Command{
		Use:   "setup-key",
		Short: "Load the Gemini API key into the environment",
		Long: `Load GOOGLE_API_KEY from a .env file (default) or, failing that, from the
notebook secrets store, and set GOOGLE_GENAI_USE_VERTEXAI accordingly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDep(deps.Credentials != nil, "credential loader"); err != nil {
				return err
			}
			if noDotenv {
				opts.UseDotenv = false
			}

			source, err := deps.Credentials.Setup(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to set up Gemini API key: %w", err)
			}

			printSuccess(cmd, "Gemini API key setup complete (source: %s, %s=%s)",
				source, entity.EnvUseVertexAI, os.Getenv(entity.EnvUseVertexAI))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.UseDotenv, "dotenv", true, "load the key from a .env file first")
	cmd.Flags().BoolVar(&noDotenv, "no-dotenv", false, "skip the .env file and use notebook secrets")
	cmd.Flags().StringVar(&opts.DotenvPath, "dotenv-path", "", "path to the .env file (default .env in the working directory)")
	cmd.Flags().BoolVar(&opts.UseVertexAI, "vertex", false, "set GOOGLE_GENAI_USE_VERTEXAI=TRUE")
	cmd.Flags().StringVar(&opts.SecretName, "secret-name", entity.DefaultSecretName, "notebook secret label holding the key")
	cmd.MarkFlagsMutuallyExclusive("dotenv", "no-dotenv")

	return cmd
}
