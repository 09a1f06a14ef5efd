package cli

import (
	"context"
	"fmt"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/env"
	"gemini-agent/internal/usecase/runner"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	ExitOK      = 0
	ExitFailure = 2
)

type CredentialSetup interface {
	Setup(ctx context.Context, opts env.SetupOptions) (entity.CredentialSource, error)
}

type RunnerProvider interface {
	EnsureRunner(ctx context.Context) (*runner.InMemoryRunner, error)
}

// Deps are the collaborators commands use. RuntimeDir resolves the Jupyter
// runtime directory when --runtime-dir is not given. LoadEnv loads the
// working directory env files; setup-key never calls it so that
// --dotenv-path is the only file it reads.
type Deps struct {
	Credentials CredentialSetup
	Runners     RunnerProvider
	Logger      output.LoggerPort
	RuntimeDir  func() string
	LoadEnv     func()
}

func NewRootCommand(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "adkctl",
		Short: "Gemini agent credential and notebook helpers",
		Long: `adkctl prepares the environment for the Gemini agent: it loads the
API key from a .env file or the notebook secrets store, prints the proxied
web UI address inside a hosted notebook and serves the dev web endpoint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSetupKeyCmd(deps))
	root.AddCommand(newProxyURLCmd(deps))
	root.AddCommand(newWebCmd(deps))
	return root
}

// Execute runs root and maps the outcome to a process exit code.
func Execute(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	red := color.New(color.FgRed)
	red.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	return ExitFailure
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	green := color.New(color.FgGreen)
	green.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func (d Deps) loadEnv() {
	if d.LoadEnv != nil {
		d.LoadEnv()
	}
}

func requireDep(ok bool, name string) error {
	if !ok {
		return fmt.Errorf("%s is not configured", name)
	}
	return nil
}
