package chat

import "strings"

const (
	DefaultChatModel      = "llama2"
	DefaultEmbeddingModel = "all-minilm"
	DefaultBaseURL        = "http://localhost:11434/v1"
	// DefaultAPIKey is required by the client library but ignored by Ollama.
	DefaultAPIKey = "ollama"
)

const (
	SeedInstruction = "You are a helpful personal assistant. Please respond concisely with complete sentences within the given token limit."
	SeedPrompt      = "Your prompt here"
)

// Fixed sampling parameters sent with every chat turn.
const (
	Temperature float32 = 0.5
	MaxTokens           = 100
)

// SessionConfig is captured once when a chat session starts.
type SessionConfig struct {
	Model string
	// EmbeddingModel is carried as configuration only; nothing reads it yet.
	EmbeddingModel string
	BaseURL        string
	APIKey         string
}

// NewSessionConfig returns a config for model with every other field
// defaulted. An empty model selects DefaultChatModel.
func NewSessionConfig(model string) SessionConfig {
	return SessionConfig{Model: model}.WithDefaults()
}

// WithDefaults fills blank fields.
func (c SessionConfig) WithDefaults() SessionConfig {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultChatModel
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = DefaultEmbeddingModel
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.APIKey == "" {
		c.APIKey = DefaultAPIKey
	}
	return c
}

// Seed returns the two turns every transcript starts with.
func Seed() []Message {
	return []Message{
		SystemMessage(SeedInstruction),
		UserMessage(SeedPrompt),
	}
}
