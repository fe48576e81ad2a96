package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestAssistant(t *testing.T, handler http.HandlerFunc) *AssistantClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewAssistantClient(AssistantConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "test-model",
		Temperature: 0.5,
	}, NewParser())
	c.backoff = time.Millisecond
	return c
}

func answerJSON(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}},
			"finishReason": "STOP",
		}},
	})
	return string(body)
}

func TestAssistantAsk(t *testing.T) {
	var got generateRequest
	c := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(answerJSON("Procure o **INSS**.")))
	})

	answer, err := c.Ask(context.Background(), "  Como pedir?  ", "Auxílio-doença")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer, "<strong>INSS</strong>") {
		t.Fatalf("answer = %s", answer)
	}
	if got.GenerationConfig.Temperature != 0.5 {
		t.Fatalf("temperature = %v", got.GenerationConfig.Temperature)
	}
	prompt := got.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, `"Auxílio-doença"`) || !strings.Contains(prompt, `"Como pedir?"`) {
		t.Fatalf("prompt = %s", prompt)
	}
	if !strings.Contains(got.SystemInstruction.Parts[0].Text, "INSS") {
		t.Fatalf("system instruction missing")
	}
}

func TestAssistantAskValidation(t *testing.T) {
	c := NewAssistantClient(AssistantConfig{}, NewParser())
	if _, err := c.Ask(context.Background(), " ", ""); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
	if _, err := c.Ask(context.Background(), "oi", ""); !errors.Is(err, ErrAssistantUnavailable) {
		t.Fatalf("err = %v, want ErrAssistantUnavailable", err)
	}
}

func TestAssistantRetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(answerJSON("ok")))
	})

	if _, err := c.Ask(context.Background(), "oi", ""); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestAssistantGivesUpOnClientErrors(t *testing.T) {
	var calls int32
	c := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	if _, err := c.Ask(context.Background(), "oi", ""); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestAssistantNoCandidates(t *testing.T) {
	c := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	if _, err := c.Ask(context.Background(), "oi", ""); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
}

func TestBuildPrompt(t *testing.T) {
	if p := BuildPrompt("Qual prazo?", ""); p != `Pergunta do usuário: "Qual prazo?"` {
		t.Fatalf("prompt = %s", p)
	}
}
