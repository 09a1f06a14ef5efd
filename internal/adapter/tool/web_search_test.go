package tool

import (
	"context"
	"errors"
	"testing"

	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	lastInput string
	result    string
	err       error
}

func (f *fakeSearch) Name() string        { return "fake search" }
func (f *fakeSearch) Description() string { return "fake" }
func (f *fakeSearch) Call(ctx context.Context, input string) (string, error) {
	f.lastInput = input
	return f.result, f.err
}

func TestWebSearchTool_Execute(t *testing.T) {
	search := &fakeSearch{result: "Title: Bengaluru weather\nLink: https://example.com"}
	tool := NewWebSearchTool(search, logger.NewNop())

	assert.Equal(t, entity.ToolWebSearch, tool.Name())
	assert.Equal(t, []string{"query"}, tool.Parameters()["required"])

	out, err := tool.Execute(context.Background(), `{"query":"  weather in Bengaluru "}`)
	require.NoError(t, err)
	assert.Equal(t, "weather in Bengaluru", search.lastInput)
	assert.Contains(t, out, "Bengaluru weather")
}

func TestWebSearchTool_Errors(t *testing.T) {
	search := &fakeSearch{err: errors.New("rate limited")}
	tool := NewWebSearchTool(search, logger.NewNop())

	_, err := tool.Execute(context.Background(), `not json`)
	assert.ErrorContains(t, err, "invalid JSON input")

	_, err = tool.Execute(context.Background(), `{"query":""}`)
	assert.ErrorContains(t, err, "query is required")

	_, err = tool.Execute(context.Background(), `{"query":"x"}`)
	assert.ErrorContains(t, err, "rate limited")
}

func TestNewDuckDuckGoSearchTool(t *testing.T) {
	tool, err := NewDuckDuckGoSearchTool(0, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "DuckDuckGo Search", tool.search.Name())
}
