package chat

import (
	"fmt"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

func transcriptCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// TokenCount estimates the size of the transcript sent on the next turn.
// cl100k_base is an approximation for local models; the count only feeds logs.
func (s *Session) TokenCount() (int, error) {
	enc, err := transcriptCodec()
	if err != nil {
		return 0, fmt.Errorf("load tokenizer: %w", err)
	}

	total := 0
	for _, msg := range s.transcript {
		ids, _, err := enc.Encode(msg.Content())
		if err != nil {
			return 0, fmt.Errorf("encode %s message: %w", msg.Role(), err)
		}
		total += len(ids)
	}
	return total, nil
}
