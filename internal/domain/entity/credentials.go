package entity

type CredentialSource string

const (
	CredentialSourceDotenv          CredentialSource = "dotenv"
	CredentialSourceNotebookSecrets CredentialSource = "notebook-secrets"
)

const (
	EnvGoogleAPIKey   = "GOOGLE_API_KEY"
	EnvUseVertexAI    = "GOOGLE_GENAI_USE_VERTEXAI"
	DefaultSecretName = "GOOGLE_API_KEY"
)
