package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-kiezmap/config"
	"go-kiezmap/logger"
)

func assistantConfig(base, key string) *config.Config {
	return &config.Config{
		Profile:           config.DefaultProfile(),
		AssistantAPIKey:   key,
		AssistantProvider: "gemini",
		Endpoints:         config.Endpoints{AssistantBase: base},
	}
}

func TestAssistantWithoutKey(t *testing.T) {
	a := NewAssistant(assistantConfig("", ""), logger.Nop())
	got := a.Complete(context.Background(), "Where should I eat in Kreuzberg?")
	if got.Live || got.Value != NoKeyAnswer || !errors.Is(got.Reason, ErrNoAPIKey) {
		t.Fatalf("Complete: want no-key fallback, got %+v", got)
	}
}

func TestAssistantLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: want=%q got=%q", "/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization: got %q", got)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != geminiModel {
			t.Errorf("model: want=%q got=%q", geminiModel, req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "Is Neukölln safe at night?" {
			t.Errorf("messages: got %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gemini-2.0-flash",
			"choices":[{"index":0,"message":{"role":"assistant","content":"  Mostly, yes.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	a := NewAssistant(assistantConfig(srv.URL, "test-key"), logger.Nop())
	got := a.Complete(context.Background(), "Is Neukölln safe at night?")
	if !got.Live || got.Value != "Mostly, yes." {
		t.Fatalf("Complete: want live answer, got %+v", got)
	}
}

func TestAssistantUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	for name, base := range map[string]string{"status": srv.URL, "transport": deadURL()} {
		t.Run(name, func(t *testing.T) {
			a := NewAssistant(assistantConfig(base, "test-key"), logger.Nop())
			got := a.Complete(context.Background(), "hello")
			if got.Live || got.Value != UnavailableAnswer || got.Reason == nil {
				t.Fatalf("Complete: want unavailable fallback, got %+v", got)
			}
		})
	}
}

func TestAssistantEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	got := NewAssistant(assistantConfig(srv.URL, "k"), logger.Nop()).Complete(context.Background(), "hi")
	if got.Live || !errors.Is(got.Reason, ErrEmptyResponse) {
		t.Fatalf("Complete: want empty-response fallback, got %+v", got)
	}
}
