package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint;
// the base URL and model name come from configuration.
type OpenAIClient struct {
	http    *resty.Client
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		http:    resty.New(),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, messages []Message, opts Options) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("prompt must not be empty")
	}

	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	payload := map[string]any{
		"model":       c.model,
		"max_tokens":  opts.MaxTokens,
		"temperature": opts.Temperature,
	}
	msgs := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, map[string]string{
			"role":    string(m.Role),
			"content": m.Content,
		})
	}
	payload["messages"] = msgs

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(payload).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		apiErr := gjson.Get(body, "error.message").String()
		if apiErr == "" {
			apiErr = resp.Status()
		}
		return "", fmt.Errorf("chat completion returned %d: %s", resp.StatusCode(), apiErr)
	}

	content := strings.TrimSpace(gjson.Get(body, "choices.0.message.content").String())
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}

	return content, nil
}
