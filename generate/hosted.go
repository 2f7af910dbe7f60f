package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// HostedConfig configures the OpenAI-compatible hosted backend.
type HostedConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	Temperature       float32
	RequestsPerSecond float64
	Burst             int
}

// Hosted calls an OpenAI-compatible completion API.
type Hosted struct {
	client  *openai.Client
	cfg     HostedConfig
	limiter *rate.Limiter
	chat    bool
}

// NewHosted returns a hosted backend. Without an API key the returned backend
// fails every call with ErrUnavailable and names the missing setting.
func NewHosted(cfg HostedConfig) Backend {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return disabled{name: "hosted", reason: "set OPENAI_API_KEY to enable the hosted model"}
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimRight(base, "/")
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Hosted{
		client:  openai.NewClientWithConfig(clientCfg),
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		chat:    UsesChatEndpoint(cfg.Model),
	}
}

// Name implements Backend.
func (h *Hosted) Name() string { return "hosted:" + h.cfg.Model }

// Complete implements Backend.
func (h *Hosted) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}
	if h.chat {
		return h.completeChat(ctx, prompt, maxTokens)
	}
	return h.completeLegacy(ctx, prompt, maxTokens)
}

func (h *Hosted) completeChat(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := h.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: h.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: h.cfg.Temperature,
		N:           1,
	})
	if err != nil {
		return "", describeAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (h *Hosted) completeLegacy(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := h.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       h.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: h.cfg.Temperature,
		N:           1,
	})
	if err != nil {
		return "", describeAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Text), nil
}

// UsesChatEndpoint reports whether model is served by the chat completions
// endpoint rather than the legacy completions endpoint.
func UsesChatEndpoint(model string) bool {
	normalized := strings.ToLower(strings.TrimSpace(model))
	if normalized == "" {
		return false
	}
	if strings.HasPrefix(normalized, "text-") || strings.HasPrefix(normalized, "code-") {
		return false
	}
	if strings.HasPrefix(normalized, "gpt-3.5") && strings.Contains(normalized, "instruct") {
		return false
	}
	return true
}

func describeAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("HTTP error %d from hosted API: %w", apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("HTTP error %d from hosted API: %w", reqErr.HTTPStatusCode, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("hosted API timed out: %w", err)
	}
	return fmt.Errorf("network error contacting hosted API: %w", err)
}

// disabled is a Backend that always reports why it cannot serve requests.
type disabled struct {
	name   string
	reason string
}

func (d disabled) Name() string { return d.name }

func (d disabled) Complete(context.Context, string, int) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnavailable, d.reason)
}
