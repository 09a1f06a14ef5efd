package kaggle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"gemini-agent/internal/application/port/output"

	"github.com/go-resty/resty/v2"
)

var _ output.SecretsPort = (*Client)(nil)

const (
	DefaultURLBase = "https://www.kaggle.com"

	EnvURLBase          = "KAGGLE_URL_BASE"
	EnvUserSecretsToken = "KAGGLE_USER_SECRETS_TOKEN"
	EnvIAPToken         = "KAGGLE_IAP_TOKEN"

	getSecretByLabelEndpoint = "/requests/GetUserSecretByLabelRequest"
	requestTimeout           = 40 * time.Second
)

var (
	ErrNotInNotebook = errors.New("kaggle notebook environment not detected")
	ErrBackend       = errors.New("unexpected response from the secrets service")
)

type Config struct {
	URLBase   string
	UserToken string
	IAPToken  string
}

type Client struct {
	client *resty.Client
}

type envelope struct {
	WasSuccessful bool            `json:"wasSuccessful"`
	Result        *secretResponse `json:"result"`
}

type secretResponse struct {
	Secret *string `json:"secret"`
}

// NewFromEnv fails with ErrNotInNotebook outside a Kaggle notebook.
func NewFromEnv() (*Client, error) {
	token := os.Getenv(EnvUserSecretsToken)
	if token == "" {
		return nil, ErrNotInNotebook
	}
	return New(Config{
		URLBase:   os.Getenv(EnvURLBase),
		UserToken: token,
		IAPToken:  os.Getenv(EnvIAPToken),
	}), nil
}

func New(cfg Config) *Client {
	urlBase := cfg.URLBase
	if urlBase == "" {
		urlBase = DefaultURLBase
	}

	client := resty.New().
		SetBaseURL(urlBase).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Kaggle-Authorization", "Bearer "+cfg.UserToken)
	if cfg.IAPToken != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.IAPToken)
	}

	return &Client{client: client}
}

func (c *Client) GetSecret(ctx context.Context, label string) (string, error) {
	var out envelope
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"Label": label}).
		SetResult(&out).
		Post(getSecretByLabelEndpoint)
	if err != nil {
		return "", fmt.Errorf("secrets request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrBackend, resp.StatusCode(), resp.String())
	}
	if !out.WasSuccessful || out.Result == nil || out.Result.Secret == nil {
		return "", fmt.Errorf("%w: %s", ErrBackend, resp.String())
	}

	return *out.Result.Secret, nil
}
