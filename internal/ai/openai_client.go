package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

type OpenAIClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	RPS     float64
	Burst   int
}

// NewOpenAIClient never fails on a missing key; Complete reports ErrNotConfigured instead.
func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	c := &OpenAIClient{model: opts.Model}
	if opts.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst)
	}
	if opts.APIKey == "" {
		return c
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c
}

func (c *OpenAIClient) Configured() bool {
	return c.client != nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("ai: rate limit wait: %w", err)
		}
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		log.Println("[ai] OpenAI error:", err)
		return "", fmt.Errorf("ai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Println("[ai] empty choices")
		return "", errors.New("ai: empty choices")
	}

	raw := resp.Choices[0].Message.Content
	log.Printf("[ai] raw response: %s", Short(raw))

	return raw, nil
}

const shortLimit = 180

// Short trims long payloads for logging to at most shortLimit bytes, cut on
// a rune boundary.
func Short(s string) string {
	if len(s) <= shortLimit {
		return s
	}
	cut := shortLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
