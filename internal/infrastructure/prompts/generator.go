package prompts

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"gemini-agent/internal/domain/entity"
)

type ToolInfo struct {
	Name        string
	Description string
}

type AgentPromptData struct {
	Name        string
	Description string
	Instruction string
	Tools       []ToolInfo
}

// GenerateAgentPrompt renders the system instruction for an agent from
// baseTemplate. Tool descriptions are collapsed to a single line.
func GenerateAgentPrompt(baseTemplate string, spec entity.AgentSpec, tools []entity.ToolDefinition) (string, error) {
	toolInfos := make([]ToolInfo, 0, len(tools))
	for _, t := range tools {
		toolInfos = append(toolInfos, ToolInfo{
			Name:        t.Name,
			Description: strings.Join(strings.Fields(t.Description), " "),
		})
	}

	sort.Slice(toolInfos, func(i, j int) bool {
		return toolInfos[i].Name < toolInfos[j].Name
	})

	data := AgentPromptData{
		Name:        spec.Name,
		Description: spec.Description,
		Instruction: spec.Instruction,
		Tools:       toolInfos,
	}

	tmpl, err := template.New("agent").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
