package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"go-kiezmap/config"
	"go-kiezmap/logger"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	geminiModel   = "gemini-2.0-flash"

	NoKeyAnswer       = "An API key is required to use the travel assistant."
	UnavailableAnswer = "The assistant is unavailable right now. Please try again."
)

var (
	ErrNoAPIKey      = errors.New("assistant API key not configured")
	ErrEmptyResponse = errors.New("assistant returned empty response or choices")
)

// Assistant answers chat prompts through an OpenAI-compatible chat completion endpoint.
// Answers are never memoized.
type Assistant struct {
	client       *openai.Client
	model        string
	systemPrompt string
	log          *logger.Logger
}

func NewAssistant(cfg *config.Config, log *logger.Logger) *Assistant {
	a := &Assistant{
		log:          log.With("component", "Assistant"),
		systemPrompt: "You are a concise, friendly travel guide for " + cfg.Profile.City + ". Answer practical questions about neighbourhoods, sights, food, transport and safety.",
	}
	if cfg.AssistantAPIKey == "" {
		return a
	}

	clientCfg := openai.DefaultConfig(cfg.AssistantAPIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	a.model = openai.GPT4oMini
	if cfg.AssistantProvider != "openai" {
		clientCfg.BaseURL = geminiBaseURL
		a.model = geminiModel
	}
	if cfg.Endpoints.AssistantBase != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.Endpoints.AssistantBase, "/")
	}
	if cfg.AssistantModel != "" {
		a.model = cfg.AssistantModel
	}
	a.client = openai.NewClientWithConfig(clientCfg)
	a.log.Info("assistant configured", "provider", cfg.AssistantProvider, "model", a.model)
	return a
}

// Complete sends the single latest prompt. Failures come back as a placeholder answer.
func (a *Assistant) Complete(ctx context.Context, prompt string) (res Result[string]) {
	if a.client == nil {
		return NewFallback(NoKeyAnswer, ErrNoAPIKey)
	}
	ctx, span := startSpan(ctx, "gateway.Assistant",
		attribute.String("llm.model", a.model),
		attribute.Int("prompt.length", len(prompt)))
	defer func() { endSpan(span, res.Reason) }()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: a.systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		a.log.Warn("assistant completion failed", "error", err)
		return NewFallback(UnavailableAnswer, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		a.log.Warn("assistant completion failed", "error", ErrEmptyResponse)
		return NewFallback(UnavailableAnswer, ErrEmptyResponse)
	}
	return NewLive(strings.TrimSpace(resp.Choices[0].Message.Content))
}
