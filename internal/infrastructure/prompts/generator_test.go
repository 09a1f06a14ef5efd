package prompts

import (
	"strings"
	"testing"

	"gemini-agent/internal/domain/entity"
)

func TestGenerateAgentPrompt(t *testing.T) {
	spec := entity.DefaultAgentSpec()
	tools := []entity.ToolDefinition{
		{Name: "web_search", Description: "Searches the web.\n\tInput is a query."},
		{Name: "fetch_page", Description: "Reads a page"},
	}

	result, err := GenerateAgentPrompt(AgentPrompt, spec, tools)
	if err != nil {
		t.Fatalf("GenerateAgentPrompt failed: %v", err)
	}

	if !strings.Contains(result, `Your internal name is "helpful_assistant"`) {
		t.Error("Result should contain the agent name")
	}

	if !strings.Contains(result, entity.DefaultAgentDescription) {
		t.Error("Result should contain the agent description")
	}

	if !strings.Contains(result, "- web_search: Searches the web. Input is a query.") {
		t.Errorf("Result should contain a single-line web_search entry:\n%s", result)
	}

	if strings.Index(result, "fetch_page") > strings.Index(result, "web_search") {
		t.Error("Tools should be listed by name")
	}

	if !strings.HasSuffix(result, entity.DefaultAgentInstruction) {
		t.Error("Result should end with the instruction")
	}

	t.Logf("Generated prompt:\n%s", result)
}

func TestGenerateAgentPromptWithoutTools(t *testing.T) {
	spec := entity.AgentSpec{Name: "bare", Instruction: "Answer briefly."}

	result, err := GenerateAgentPrompt(AgentPrompt, spec, nil)
	if err != nil {
		t.Fatalf("GenerateAgentPrompt failed: %v", err)
	}

	if strings.Contains(result, "You can call these tools") {
		t.Error("Tool section should be omitted when there are no tools")
	}

	if strings.Contains(result, "The description about you") {
		t.Error("Description should be omitted when empty")
	}
}

func TestGenerateAgentPromptInvalidTemplate(t *testing.T) {
	_, err := GenerateAgentPrompt(`Test {{.InvalidField}}`, entity.DefaultAgentSpec(), nil)
	if err == nil {
		t.Error("Expected error for invalid template, got nil")
	}
}
