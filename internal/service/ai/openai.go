package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	chatmodel "github.com/zhouzirui/simplechat/internal/model/chat"
)

// ChatCompleter is the completion endpoint as seen by a chat session.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient binds an OpenAI-compatible client to the session's endpoint.
func NewOpenAIClient(cfg chatmodel.SessionConfig) *openai.Client {
	cfg = cfg.WithDefaults()
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	return openai.NewClientWithConfig(clientCfg)
}

// ToOpenAIMessages converts transcript turns to the wire format.
func ToOpenAIMessages(messages []chatmodel.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openAIRole(msg.Role()),
			Content: msg.Content(),
		})
	}
	return out
}

func openAIRole(role chatmodel.Role) string {
	switch role {
	case chatmodel.RoleSystem:
		return openai.ChatMessageRoleSystem
	case chatmodel.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}

var _ ChatCompleter = (*openai.Client)(nil)
