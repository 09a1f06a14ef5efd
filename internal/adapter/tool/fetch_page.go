package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"

	"github.com/go-resty/resty/v2"
)

var _ output.ToolPort = (*FetchPageTool)(nil)

const (
	fetchTimeout = 20 * time.Second
	maxBodyBytes = 2 << 20
)

type FetchPageTool struct {
	client  *resty.Client
	logger  output.LoggerPort
	maxSize int
	maxBody int64
}

func NewFetchPageTool(logger output.LoggerPort) *FetchPageTool {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", searchUserAgent).
		SetHeader("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")
	return &FetchPageTool{
		client:  client,
		logger:  logger,
		maxSize: DefaultTextConfig.MaxOutputSize,
		maxBody: maxBodyBytes,
	}
}

func (t *FetchPageTool) Name() entity.ToolName { return entity.ToolFetchPage }
func (t *FetchPageTool) Description() string {
	return "Downloads a web page and returns its readable text. Use it to read a search result in full."
}
func (t *FetchPageTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Absolute http(s) URL to read",
			},
		},
		"required": []string{"url"},
	}
}

func (t *FetchPageTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid JSON input: %w", err)
	}

	u, err := url.Parse(strings.TrimSpace(input.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("url must be an absolute http(s) URL, got %q", input.URL)
	}

	// the raw body is read through a limit so large pages stay bounded in memory
	resp, err := t.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(u.String())
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: status %d", u, resp.StatusCode())
	}

	data, err := io.ReadAll(io.LimitReader(raw, t.maxBody))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u, err)
	}

	t.logger.Debug("Page fetched", "url", u.String(), "status", resp.StatusCode(), "bytes", len(data))

	body := string(data)
	if !strings.Contains(resp.Header().Get("Content-Type"), "html") {
		return truncateText(body, t.maxSize), nil
	}

	cfg := DefaultTextConfig
	cfg.MaxOutputSize = t.maxSize
	return ExtractReadableText(body, &cfg), nil
}
