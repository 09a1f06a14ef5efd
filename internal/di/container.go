package di

import (
	"errors"
	"fmt"
	"io"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/infrastructure/env"
	"gemini-agent/internal/infrastructure/logger"
	"gemini-agent/internal/infrastructure/secrets/kaggle"
	"gemini-agent/internal/infrastructure/userinteraction"
)

type Container struct {
	Config      Config
	Env         output.ConfigPort
	Logger      output.LoggerPort
	Printer     output.EventPrinter
	Credentials *env.CredentialLoader
	Provider    *Provider
}

// NewContainer wires the process dependencies. Debug transcripts go to out
// (stdout when nil); opts tune the agent provider.
func NewContainer(cfg Config, conf output.ConfigPort, out io.Writer, opts ...ProviderOption) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Name:    cfg.LogName,
		Dir:     cfg.LogDir,
		Level:   cfg.LogLevel,
		Console: cfg.LogConsole,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var secrets output.SecretsPort
	client, err := kaggle.NewFromEnv()
	switch {
	case err == nil:
		secrets = client
	case errors.Is(err, kaggle.ErrNotInNotebook):
		log.Debug("Notebook secrets store not detected")
	default:
		log.Close()
		return nil, fmt.Errorf("failed to create secrets client: %w", err)
	}

	printer := userinteraction.NewConsolePrinter(out)

	return &Container{
		Config:      cfg,
		Env:         conf,
		Logger:      log,
		Printer:     printer,
		Credentials: env.NewCredentialLoader(secrets, log),
		Provider:    NewProvider(conf, log, append([]ProviderOption{WithPrinter(printer)}, opts...)...),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
