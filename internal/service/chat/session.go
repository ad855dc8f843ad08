package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	chatmodel "github.com/zhouzirui/simplechat/internal/model/chat"
	"github.com/zhouzirui/simplechat/internal/service/ai"
)

// ErrNoChoices is returned when the endpoint answers without any choice.
var ErrNoChoices = errors.New("completion response has no choices")

// Session owns a growing transcript and relays each turn to the completion
// endpoint. A Session is not safe for concurrent use.
type Session struct {
	id         string
	cfg        chatmodel.SessionConfig
	client     ai.ChatCompleter
	transcript []chatmodel.Message
}

// NewSession seeds a transcript for cfg. Blank config fields take their
// defaults, so an empty model selects chatmodel.DefaultChatModel.
func NewSession(client ai.ChatCompleter, cfg chatmodel.SessionConfig) *Session {
	transcript := make([]chatmodel.Message, 0, 16)
	transcript = append(transcript, chatmodel.Seed()...)

	return &Session{
		id:         uuid.NewString(),
		cfg:        cfg.WithDefaults(),
		client:     client,
		transcript: transcript,
	}
}

// New builds a session bound to an OpenAI-compatible client for cfg's endpoint.
func New(cfg chatmodel.SessionConfig) *Session {
	cfg = cfg.WithDefaults()
	return NewSession(ai.NewOpenAIClient(cfg), cfg)
}

// Chat records message as a user turn, sends the whole transcript and records
// the first choice as the assistant turn.
//
// On failure the user turn stays in the transcript without a reply.
func (s *Session) Chat(ctx context.Context, message string) (string, error) {
	s.transcript = append(s.transcript, chatmodel.UserMessage(message))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    ai.ToOpenAIMessages(s.transcript),
		Stream:      false,
		Temperature: chatmodel.Temperature,
		MaxTokens:   chatmodel.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	reply := resp.Choices[0].Message.Content
	s.transcript = append(s.transcript, chatmodel.AssistantMessage(reply))

	log.Printf("[chat] session=%s model=%s turns=%d reply length=%d", s.id, s.cfg.Model, len(s.transcript), len(reply))
	return reply, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Model() string {
	return s.cfg.Model
}

func (s *Session) Config() chatmodel.SessionConfig {
	return s.cfg
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []chatmodel.Message {
	copied := make([]chatmodel.Message, len(s.transcript))
	copy(copied, s.transcript)
	return copied
}

func (s *Session) Len() int {
	return len(s.transcript)
}
