package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gemini-agent/internal/application/port/input"
	"gemini-agent/internal/di"
	"gemini-agent/internal/infrastructure/env"
	"gemini-agent/internal/usecase/runner"

	"github.com/fatih/color"
)

const (
	defaultQuery    = "What's the weather in Bengaluru?"
	maxResponseLen  = 1000
	exitInterrupted = 1
	exitFailure     = 2

	// EnvDebugVerbose also prints tool calls and results.
	EnvDebugVerbose = "DEBUG_VERBOSE"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...di.ProviderOption) int {
	envService := env.NewEnvService()

	container, err := di.NewContainer(di.ConfigFromEnv(envService), envService, stdout, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize agent runner: %v\n", err)
		return exitFailure
	}
	defer container.Close()

	r, err := container.Provider.EnsureRunner(ctx)
	if err != nil {
		if interrupted(ctx) {
			return reportInterrupt(stderr)
		}
		container.Logger.Error("Runner initialization failed", "error", err)
		fmt.Fprintf(stderr, "Failed to initialize agent runner: %v\n", err)
		return exitFailure
	}

	query := defaultQuery
	if len(args) > 0 {
		query = strings.Join(args, " ")
	}
	fmt.Fprintf(stdout, "Running debug call: %q\n", query)

	var debugOpts []input.DebugOption
	if envService.GetBool(EnvDebugVerbose, false) {
		debugOpts = append(debugOpts, input.WithVerbose())
	}

	events, err := r.RunDebug(ctx, query, debugOpts...)
	if err != nil {
		if interrupted(ctx) {
			return reportInterrupt(stderr)
		}
		container.Logger.Error("Debug call failed", "error", err)
		fmt.Fprintf(stderr, "Error while running debug call: %v\n", err)
		return exitFailure
	}

	text := runner.ExtractText(events)
	if text == "" {
		fmt.Fprintln(stdout, "No textual output available from the response.")
		return 0
	}

	bold := color.New(color.Bold)
	bold.Fprintln(stdout, "\n--- Response ---")
	fmt.Fprintln(stdout, runner.Summarize(text, maxResponseLen))
	return 0
}

func interrupted(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func reportInterrupt(stderr io.Writer) int {
	fmt.Fprintln(stderr, "Interrupted by user")
	return exitInterrupted
}
