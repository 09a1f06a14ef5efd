package env

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"

	"github.com/joho/godotenv"
)

var (
	ErrAPIKeyMissing      = errors.New("GOOGLE_API_KEY not found in .env or environment")
	ErrSecretsUnavailable = errors.New("notebook secrets store is unavailable")
	ErrSecretEmpty        = errors.New("secret not found or empty")
)

type SetupOptions struct {
	UseDotenv   bool
	DotenvPath  string
	UseVertexAI bool
	SecretName  string
}

func DefaultSetupOptions() SetupOptions {
	return SetupOptions{
		UseDotenv:  true,
		SecretName: entity.DefaultSecretName,
	}
}

// CredentialLoader populates GOOGLE_API_KEY and GOOGLE_GENAI_USE_VERTEXAI
// from a dotenv file or from the notebook secrets store.
type CredentialLoader struct {
	secrets output.SecretsPort
	logger  output.LoggerPort
}

// NewCredentialLoader accepts a nil secrets port when no notebook
// environment is present.
func NewCredentialLoader(secrets output.SecretsPort, logger output.LoggerPort) *CredentialLoader {
	return &CredentialLoader{
		secrets: secrets,
		logger:  logger,
	}
}

// LoadFromDotenv never overrides variables that are already set.
func (c *CredentialLoader) LoadFromDotenv(path string) error {
	var err error
	if path == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(path)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}

	if os.Getenv(entity.EnvGoogleAPIKey) == "" {
		return ErrAPIKeyMissing
	}

	if os.Getenv(entity.EnvUseVertexAI) == "" {
		if err := os.Setenv(entity.EnvUseVertexAI, "FALSE"); err != nil {
			return fmt.Errorf("set %s: %w", entity.EnvUseVertexAI, err)
		}
	}

	c.logger.Info("Loaded .env and set required environment variables", "path", path)
	return nil
}

func (c *CredentialLoader) SetupFromNotebookSecrets(ctx context.Context, useVertexAI bool, secretName string) error {
	if c.secrets == nil {
		return ErrSecretsUnavailable
	}
	if secretName == "" {
		secretName = entity.DefaultSecretName
	}

	key, err := c.secrets.GetSecret(ctx, secretName)
	if err != nil {
		return fmt.Errorf("read secret %q: %w", secretName, err)
	}
	if key == "" {
		return fmt.Errorf("%w: %s", ErrSecretEmpty, secretName)
	}

	if err := os.Setenv(entity.EnvGoogleAPIKey, key); err != nil {
		return fmt.Errorf("set %s: %w", entity.EnvGoogleAPIKey, err)
	}
	if err := os.Setenv(entity.EnvUseVertexAI, vertexFlag(useVertexAI)); err != nil {
		return fmt.Errorf("set %s: %w", entity.EnvUseVertexAI, err)
	}

	c.logger.Info("Gemini API key setup complete", "source", entity.CredentialSourceNotebookSecrets, "vertex", useVertexAI)
	return nil
}

// Setup tries the dotenv file first (when enabled) and falls back to the
// notebook secrets store.
func (c *CredentialLoader) Setup(ctx context.Context, opts SetupOptions) (entity.CredentialSource, error) {
	if opts.UseDotenv {
		err := c.LoadFromDotenv(opts.DotenvPath)
		if err == nil {
			if opts.UseVertexAI {
				if err := os.Setenv(entity.EnvUseVertexAI, vertexFlag(true)); err != nil {
					return "", fmt.Errorf("set %s: %w", entity.EnvUseVertexAI, err)
				}
			}
			return entity.CredentialSourceDotenv, nil
		}
		c.logger.Warn("Dotenv credentials unavailable, trying notebook secrets", "error", err)
	}

	if err := c.SetupFromNotebookSecrets(ctx, opts.UseVertexAI, opts.SecretName); err != nil {
		return "", err
	}
	return entity.CredentialSourceNotebookSecrets, nil
}

func vertexFlag(enabled bool) string {
	if enabled {
		return "TRUE"
	}
	return "FALSE"
}
