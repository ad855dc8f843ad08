package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ErrEmptyQuestion is returned when an empty question reaches the QA service.
var ErrEmptyQuestion = errors.New("question is empty")

// QAService answers one question at a time. It keeps no history, so calls are
// independent and safe to run concurrently.
type QAService struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewQAService compiles a chain that sends the question as the only message.
func NewQAService(ctx context.Context, chatModel model.BaseChatModel) (*QAService, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{question}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile qa chain: %w", err)
	}

	return &QAService{chain: runnable}, nil
}

// Answer returns the completion text for question. Empty input never reaches
// the model; whitespace is passed through as typed.
func (s *QAService) Answer(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", ErrEmptyQuestion
	}

	response, err := s.chain.Invoke(ctx, map[string]any{"question": question})
	if err != nil {
		return "", fmt.Errorf("failed to run qa chain: %w", err)
	}

	log.Printf("[qa] answered question length=%d, answer length=%d", len(question), len(response.Content))
	return response.Content, nil
}
