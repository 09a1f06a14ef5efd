package di

import (
	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/llm/gemini"
)

const (
	EnvCloudProject     = "GOOGLE_CLOUD_PROJECT"
	EnvCloudLocation    = "GOOGLE_CLOUD_LOCATION"
	EnvCloudAccessToken = "GOOGLE_CLOUD_ACCESS_TOKEN"
	EnvBaseURL          = "GEMINI_BASE_URL"
	EnvAgentModel       = "AGENT_MODEL"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogDir           = "LOG_DIR"
)

type Config struct {
	APIKey      string
	UseVertexAI bool
	Project     string
	Location    string
	AccessToken string
	BaseURL     string
	Model       string

	LogName    string
	LogLevel   string
	LogDir     string
	LogConsole bool
}

// ConfigFromEnv resolves the container configuration. It is evaluated
// lazily because credential setup may populate the environment late.
func ConfigFromEnv(env output.ConfigPort) Config {
	return Config{
		APIKey:      env.Get(entity.EnvGoogleAPIKey),
		UseVertexAI: env.GetBool(entity.EnvUseVertexAI, false),
		Project:     env.Get(EnvCloudProject),
		Location:    env.GetWithDefault(EnvCloudLocation, gemini.DefaultVertexLocation),
		AccessToken: env.Get(EnvCloudAccessToken),
		BaseURL:     env.Get(EnvBaseURL),
		Model:       env.GetWithDefault(EnvAgentModel, entity.DefaultAgentModel),
		LogName:     "agent",
		LogLevel:    env.GetWithDefault(EnvLogLevel, "info"),
		LogDir:      env.GetWithDefault(EnvLogDir, "log"),
	}
}
