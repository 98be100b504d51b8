// Package llm is the boundary to the remote generative model. Clients make
// exactly one attempt per invocation: there is no retry or backoff here or
// anywhere above, so every caller must treat a returned error as the final
// outcome of that call.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/krinol/resume-analyzer/internal/config"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged entry of a chat exchange.
type Message struct {
	Role    Role
	Content string
}

// Options are the per-call generation parameters.
type Options struct {
	MaxTokens   int32
	Temperature float32
}

// Client issues a single prompt/response exchange with the model backend.
type Client interface {
	ChatCompletion(ctx context.Context, messages []Message, opts Options) (string, error)
}

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg *config.LLMConfig) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
	case "openai", "":
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}

// splitMessages separates system instructions from user content. Multiple
// entries of the same role are joined in order.
func splitMessages(messages []Message) (system string, user string) {
	var sys, usr []string
	for _, m := range messages {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		switch m.Role {
		case RoleSystem:
			sys = append(sys, text)
		default:
			usr = append(usr, text)
		}
	}
	return strings.Join(sys, "\n"), strings.Join(usr, "\n")
}

// callContext derives the per-call deadline. A hung remote call surfaces as
// a context deadline error instead of stalling a worker forever.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
