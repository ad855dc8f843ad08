package chat

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"system", "user", "assistant"} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q) err: %v", raw, err)
		}
		if role.String() != raw {
			t.Fatalf("unexpected role: got %s want %s", role, raw)
		}
	}

	if _, err := ParseRole("tool"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestNewMessageRejectsUnknownRole(t *testing.T) {
	if _, err := NewMessage(Role("narrator"), "hi"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	msg, err := NewMessage(RoleUser, "hi")
	if err != nil {
		t.Fatalf("NewMessage err: %v", err)
	}
	if msg.Role() != RoleUser || msg.Content() != "hi" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestMessageMarshalJSON(t *testing.T) {
	data, err := json.Marshal(AssistantMessage("Hi there!"))
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	if string(data) != `{"role":"assistant","content":"Hi there!"}` {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestNewSessionConfigDefaults(t *testing.T) {
	cfg := NewSessionConfig("")
	if cfg.Model != DefaultChatModel {
		t.Fatalf("expected default model, got %q", cfg.Model)
	}
	if cfg.EmbeddingModel != DefaultEmbeddingModel {
		t.Fatalf("expected embedding model %q, got %q", DefaultEmbeddingModel, cfg.EmbeddingModel)
	}
	if cfg.BaseURL != DefaultBaseURL || cfg.APIKey != DefaultAPIKey {
		t.Fatalf("unexpected connection defaults: %+v", cfg)
	}

	if got := NewSessionConfig("mistral").Model; got != "mistral" {
		t.Fatalf("expected model preserved, got %q", got)
	}
}

func TestSeedOrder(t *testing.T) {
	seed := Seed()
	if len(seed) != 2 {
		t.Fatalf("expected 2 seed messages, got %d", len(seed))
	}
	if seed[0].Role() != RoleSystem || seed[0].Content() != SeedInstruction {
		t.Fatalf("unexpected first seed: %+v", seed[0])
	}
	if seed[1].Role() != RoleUser || seed[1].Content() != SeedPrompt {
		t.Fatalf("unexpected second seed: %+v", seed[1])
	}
}
