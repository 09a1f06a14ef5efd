package entity

type ToolName string

const (
	ToolWebSearch ToolName = "web_search"
	ToolFetchPage ToolName = "fetch_page"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolResult is the observation returned to the model for one ToolCall.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Name    string `json:"name"`
	Output  string `json:"output"`
	IsError bool   `json:"is_error,omitempty"`
}
