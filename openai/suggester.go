// Package openai implements chintai.Suggester using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/onobori/chintai"
	"github.com/sashabaranov/go-openai"
)

// Defaults for suggestion requests.
const (
	DefaultModel     = openai.GPT4
	DefaultMaxTokens = 300
)

// ClientOption configures the client built by NewClient.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL      string
	logger       *slog.Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// WithBaseURL points the client at a different API root, e.g. a proxy or a
// test server. The URL must include the version path ("/v1").
func WithBaseURL(u string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = u
	}
}

// WithLogger logs transport retries to logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithRetry sets the retry budget and backoff bounds of the transport.
func WithRetry(max int, waitMin, waitMax time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.retryMax = max
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// NewClient creates an OpenAI client authenticated with apiKey. Requests go
// through a retrying transport.
func NewClient(apiKey string, opts ...ClientOption) *openai.Client {
	cfg := clientConfig{
		retryMax:     2,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.retryMax
	rc.RetryWaitMin = cfg.retryWaitMin
	rc.RetryWaitMax = cfg.retryWaitMax
	rc.Logger = nil
	if cfg.logger != nil {
		rc.Logger = cfg.logger
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = rc.StandardClient()
	if cfg.baseURL != "" {
		config.BaseURL = cfg.baseURL
	}

	return openai.NewClientWithConfig(config)
}

// Ensure Suggester implements chintai.Suggester at compile time.
var _ chintai.Suggester = (*Suggester)(nil)

// Suggester asks a chat model for stations near a workplace.
type Suggester struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// Option configures a Suggester.
type Option func(*Suggester)

// WithModel sets the chat model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(s *Suggester) {
		if model != "" {
			s.model = model
		}
	}
}

// WithMaxTokens sets the completion token limit. Defaults to DefaultMaxTokens.
func WithMaxTokens(n int) Option {
	return func(s *Suggester) {
		s.maxTokens = n
	}
}

// NewSuggester creates a new Suggester.
func NewSuggester(client *openai.Client, opts ...Option) *Suggester {
	s := &Suggester{
		client:    client,
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest requests stations reachable from station within minutes.
// Failed calls and replies without choices produce a Suggestion carrying
// only a Diagnostic.
func (s *Suggester) Suggest(ctx context.Context, station string, minutes int) (*chintai.Suggestion, error) {
	if err := chintai.ValidateSuggestRequest(station, minutes); err != nil {
		return nil, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, BuildRequest(s.model, s.maxTokens, station, minutes))
	if err != nil {
		return chintai.SuggestionFailure("API request failed: %v", err), nil
	}
	if len(resp.Choices) == 0 {
		return chintai.SuggestionFailure("no choices in response"), nil
	}

	return chintai.SuggestionFromReply(resp.Choices[0].Message.Content), nil
}

// BuildRequest returns the chat completion request for a suggestion.
func BuildRequest(model string, maxTokens int, station string, minutes int) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chintai.SuggestionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: chintai.SuggestionPrompt(station, minutes)},
		},
		MaxTokens: maxTokens,
	}
}
