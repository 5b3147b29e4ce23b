package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutricoach/metrics"

	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT4oMini

// CompletionOptions são os parâmetros por chamada.
type CompletionOptions struct {
	MaxTokens   int
	Temperature float32
}

// Completer is one synchronous request/response exchange with a chat model.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, opts CompletionOptions) (string, error)
}

type OpenAIConfig struct {
	ApiKey  string
	Project string // optional, sent as OpenAI-Project
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIClient calls the Chat Completions API. No retry, no streaming.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	apiKey := strings.TrimSpace(cfg.ApiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientConfig.BaseURL = strings.TrimRight(base, "/")
	}

	var transport http.RoundTripper = http.DefaultTransport
	if project := strings.TrimSpace(cfg.Project); project != "" {
		transport = projectTransport{project: project, next: transport}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout, Transport: transport}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

func (c *OpenAIClient) Model() string { return c.model }

// Complete sends messages and returns the first choice's text, trimmed.
func (c *OpenAIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, opts CompletionOptions) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	metrics.CompletionDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, metrics.OutcomeError).Inc()
		return "", describeOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, metrics.OutcomeError).Inc()
		return "", fmt.Errorf("empty response from model (no choices)")
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, metrics.OutcomeSuccess).Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describeOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai error %d: %w", apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai request error %d: %w", reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("openai: %w", err)
}

type projectTransport struct {
	project string
	next    http.RoundTripper
}

func (t projectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("OpenAI-Project", t.project)
	return t.next.RoundTrip(req)
}

// Message helpers keep call sites short.

func SystemMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: content}
}

func UserMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: content}
}

func AssistantMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}
}
