package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"

	lctools "github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/duckduckgo"
)

var _ output.ToolPort = (*WebSearchTool)(nil)

const (
	defaultSearchResults = 5
	searchUserAgent      = "gemini-agent/1.0"
)

// WebSearchTool exposes a langchaingo search tool to the model with a
// structured {"query": ...} argument.
type WebSearchTool struct {
	search lctools.Tool
	logger output.LoggerPort
}

func NewWebSearchTool(search lctools.Tool, logger output.LoggerPort) *WebSearchTool {
	return &WebSearchTool{search: search, logger: logger}
}

// NewDuckDuckGoSearchTool backs the tool with DuckDuckGo, which needs no API key.
func NewDuckDuckGoSearchTool(maxResults int, logger output.LoggerPort) (*WebSearchTool, error) {
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}
	ddg, err := duckduckgo.New(maxResults, searchUserAgent)
	if err != nil {
		return nil, fmt.Errorf("create duckduckgo tool: %w", err)
	}
	return NewWebSearchTool(ddg, logger), nil
}

func (t *WebSearchTool) Name() entity.ToolName { return entity.ToolWebSearch }
func (t *WebSearchTool) Description() string {
	return "Searches the web for current information. Returns titles, links and snippets of the top results."
}
func (t *WebSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *WebSearchTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid JSON input: %w", err)
	}
	input.Query = strings.TrimSpace(input.Query)
	if input.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	t.logger.Debug("Searching the web", "backend", t.search.Name(), "query", input.Query)

	result, err := t.search.Call(ctx, input.Query)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	return result, nil
}
