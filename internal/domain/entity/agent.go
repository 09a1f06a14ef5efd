package entity

const (
	DefaultAgentModel       = "gemini-2.5-flash-lite"
	DefaultAgentName        = "helpful_assistant"
	DefaultAgentDescription = "A simple agent that can answer general questions."
	DefaultAgentInstruction = "You are a helpful assistant. Use Google Search for current info or if unsure."
)

// AgentSpec describes the identity of an LLM agent as seen by the model.
type AgentSpec struct {
	Name        string
	Model       string
	Description string
	Instruction string
}

func DefaultAgentSpec() AgentSpec {
	return AgentSpec{
		Name:        DefaultAgentName,
		Model:       DefaultAgentModel,
		Description: DefaultAgentDescription,
		Instruction: DefaultAgentInstruction,
	}
}
