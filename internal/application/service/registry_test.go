package service

import (
	"context"
	"testing"

	"gemini-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name entity.ToolName
	desc string
}

func (s *stubTool) Name() entity.ToolName { return s.name }
func (s *stubTool) Description() string   { return s.desc }
func (s *stubTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (s *stubTool) Execute(ctx context.Context, arguments string) (string, error) {
	return arguments, nil
}

func TestToolRegistry_DefinitionsAreSorted(t *testing.T) {
	r := NewToolRegistry(
		&stubTool{name: "zeta", desc: "last"},
		&stubTool{name: "alpha", desc: "first"},
	)

	defs := r.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "alpha", defs[0].Name)
	assert.Equal(t, "first", defs[0].Description)
	assert.Equal(t, "zeta", defs[1].Name)
	assert.Equal(t, "object", defs[1].Parameters["type"])
}

func TestToolRegistry_RegisterReplaces(t *testing.T) {
	r := NewToolRegistry(&stubTool{name: entity.ToolWebSearch, desc: "old"})
	r.Register(&stubTool{name: entity.ToolWebSearch, desc: "new"})

	tool, ok := r.Get(entity.ToolWebSearch)
	require.True(t, ok)
	assert.Equal(t, "new", tool.Description())
	assert.Len(t, r.All(), 1)

	_, ok = r.Get(entity.ToolFetchPage)
	assert.False(t, ok)
}
