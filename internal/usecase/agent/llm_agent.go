package agent

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/prompts"

	"github.com/google/uuid"
)

const (
	maxIterations     = 50
	maxObservationLen = 20000
)

var ErrMaxIterations = errors.New("max iterations exceeded")

// LLMAgent answers a session turn by looping model calls and tool
// executions until the model replies without tool calls.
type LLMAgent struct {
	spec         entity.AgentSpec
	llm          output.LLMPort
	tools        output.ToolRegistry
	logger       output.LoggerPort
	systemPrompt string
	now          func() time.Time
}

func New(
	spec entity.AgentSpec,
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
) (*LLMAgent, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("agent name is required")
	}
	if llm == nil {
		return nil, fmt.Errorf("agent %s: model client is required", spec.Name)
	}

	systemPrompt, err := prompts.GenerateAgentPrompt(prompts.AgentPrompt, spec, tools.Definitions())
	if err != nil {
		return nil, fmt.Errorf("render instruction: %w", err)
	}

	return &LLMAgent{
		spec:         spec,
		llm:          llm,
		tools:        tools,
		logger:       logger.WithField("agent", spec.Name),
		systemPrompt: systemPrompt,
		now:          time.Now,
	}, nil
}

func (a *LLMAgent) Name() string {
	return a.spec.Name
}

func (a *LLMAgent) Spec() entity.AgentSpec {
	return a.spec
}

// Run continues the conversation recorded in history, whose last event is
// the user message. Every produced event is passed to emit in order; emit
// errors abort the run.
func (a *LLMAgent) Run(ctx context.Context, invocationID string, history []entity.Event, emit func(entity.Event) error) error {
	messages := a.buildMessages(history)
	toolDefs := a.tools.Definitions()

	for iteration := 1; iteration <= maxIterations; iteration++ {
		a.logger.Debug("Starting iteration", "iteration", iteration, "invocation", invocationID)

		resp, err := a.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			return fmt.Errorf("llm request failed: %w", err)
		}

		resp.Message.Role = entity.RoleAssistant
		messages = append(messages, resp.Message)

		final := len(resp.Message.ToolCalls) == 0
		if err := emit(a.modelEvent(invocationID, resp.Message, final)); err != nil {
			return err
		}
		if final {
			return nil
		}

		results := make([]entity.ToolResult, 0, len(resp.Message.ToolCalls))
		for _, tc := range resp.Message.ToolCalls {
			result := a.executeTool(ctx, tc)
			results = append(results, result)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    result.Output,
			})
		}

		if err := emit(a.toolEvent(invocationID, results)); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w (%d)", ErrMaxIterations, maxIterations)
}

func (a *LLMAgent) executeTool(ctx context.Context, tc entity.ToolCall) entity.ToolResult {
	result := entity.ToolResult{CallID: tc.ID, Name: tc.Name}

	tool, ok := a.tools.Get(entity.ToolName(tc.Name))
	if !ok {
		a.logger.Warn("Unknown tool called", "name", tc.Name)
		result.Output = fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
		result.IsError = true
		return result
	}

	a.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	out, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		a.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		result.Output = "Error: " + err.Error()
		result.IsError = true
		return result
	}

	out = truncateObservation(out, maxObservationLen)

	a.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(out))
	result.Output = out
	return result
}

func (a *LLMAgent) modelEvent(invocationID string, msg entity.Message, final bool) entity.Event {
	content := &entity.Content{Role: entity.RoleAssistant}
	if msg.Content != "" {
		content.Parts = append(content.Parts, entity.Part{Text: msg.Content})
	}
	for i := range msg.ToolCalls {
		tc := msg.ToolCalls[i]
		content.Parts = append(content.Parts, entity.Part{FunctionCall: &tc})
	}
	return a.newEvent(invocationID, content, final)
}

func (a *LLMAgent) toolEvent(invocationID string, results []entity.ToolResult) entity.Event {
	content := &entity.Content{Role: entity.RoleTool}
	for i := range results {
		r := results[i]
		content.Parts = append(content.Parts, entity.Part{FunctionResponse: &r})
	}
	return a.newEvent(invocationID, content, false)
}

func (a *LLMAgent) newEvent(invocationID string, content *entity.Content, final bool) entity.Event {
	return entity.Event{
		ID:           uuid.NewString(),
		InvocationID: invocationID,
		Author:       a.spec.Name,
		Content:      content,
		Final:        final,
		Timestamp:    a.now(),
	}
}

// buildMessages replays session history as chat messages. Events written
// by other agents are folded into user context.
func (a *LLMAgent) buildMessages(history []entity.Event) []entity.Message {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: a.systemPrompt},
	}

	for _, ev := range history {
		if ev.Content == nil {
			continue
		}

		switch {
		case ev.Author == entity.AuthorUser:
			messages = append(messages, entity.Message{Role: entity.RoleUser, Content: ev.Content.Text()})

		case ev.Author != a.spec.Name:
			if text := ev.Content.Text(); text != "" {
				messages = append(messages, entity.Message{
					Role:    entity.RoleUser,
					Content: fmt.Sprintf("For context: [%s] said: %s", ev.Author, text),
				})
			}

		case len(ev.FunctionResponses()) > 0:
			for _, r := range ev.FunctionResponses() {
				messages = append(messages, entity.Message{
					Role:       entity.RoleTool,
					ToolCallID: r.CallID,
					Name:       r.Name,
					Content:    r.Output,
				})
			}

		default:
			messages = append(messages, entity.Message{
				Role:      entity.RoleAssistant,
				Content:   ev.Content.Text(),
				ToolCalls: ev.FunctionCalls(),
			})
		}
	}

	return messages
}

// truncateObservation keeps at most maxBytes bytes of s without splitting a rune.
func truncateObservation(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}
