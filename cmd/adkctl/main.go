package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gemini-agent/internal/cli"
	"gemini-agent/internal/di"
	"gemini-agent/internal/infrastructure/env"
	"gemini-agent/internal/infrastructure/notebook"
)

func main() {
	// env files are loaded per command: setup-key reads only the file it is given
	envService := env.NewProcessEnvService()

	container, err := di.NewContainer(di.ConfigFromEnv(envService), envService, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(cli.ExitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRootCommand(cli.Deps{
		Credentials: container.Credentials,
		Runners:     container.Provider,
		Logger:      container.Logger,
		RuntimeDir:  notebook.RuntimeDir,
		LoadEnv:     env.LoadEnvFiles,
	})
	code := cli.Execute(ctx, root)

	stop()
	container.Close()
	os.Exit(code)
}
