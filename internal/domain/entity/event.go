package entity

import "time"

const AuthorUser = "user"

// Part is one piece of event content. Exactly one field is set.
type Part struct {
	Text             string      `json:"text,omitempty"`
	FunctionCall     *ToolCall   `json:"function_call,omitempty"`
	FunctionResponse *ToolResult `json:"function_response,omitempty"`
}

type Content struct {
	Role  MessageRole `json:"role"`
	Parts []Part      `json:"parts"`
}

// Text concatenates the text parts of the content.
func (c *Content) Text() string {
	if c == nil {
		return ""
	}
	var text string
	for _, p := range c.Parts {
		text += p.Text
	}
	return text
}

type Event struct {
	ID           string    `json:"id"`
	InvocationID string    `json:"invocation_id"`
	Author       string    `json:"author"`
	Content      *Content  `json:"content,omitempty"`
	Final        bool      `json:"final"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e Event) FunctionCalls() []ToolCall {
	if e.Content == nil {
		return nil
	}
	var calls []ToolCall
	for _, p := range e.Content.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, *p.FunctionCall)
		}
	}
	return calls
}

func (e Event) FunctionResponses() []ToolResult {
	if e.Content == nil {
		return nil
	}
	var results []ToolResult
	for _, p := range e.Content.Parts {
		if p.FunctionResponse != nil {
			results = append(results, *p.FunctionResponse)
		}
	}
	return results
}
