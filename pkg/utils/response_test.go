package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, "bad things")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["error"] != "bad things" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	var payload struct {
		Question string `json:"question"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"question":"why?"}`))
	if err := DecodeJSON(httptest.NewRecorder(), req, &payload); err != nil {
		t.Fatalf("DecodeJSON err: %v", err)
	}
	if payload.Question != "why?" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	for _, body := range []string{`{"question":`, `{"prompt":"x"}`, `{"question":"a"}{"question":"b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := DecodeJSON(httptest.NewRecorder(), req, &payload); err == nil {
			t.Fatalf("expected error for body %s", body)
		}
	}
}
