// Package llm implements the stateless provider boundary. A provider
// translates the conversation into a single chat-completion call and the
// response back; all conversation state lives with the caller.
package llm

import (
	"context"

	"github.com/pkg/errors"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// Message is one provider-neutral conversation entry. Roles follow the
// chat-completion convention: "user", "assistant" and "tool". Assistant
// messages may carry tool calls; tool messages answer exactly one of them
// via ToolCallID.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	// ToolError marks a tool message as a failed call.
	ToolError bool
}

// ToolCall is a tool invocation requested by the model. Arguments is the
// raw JSON string exactly as the model produced it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Usage reports the token consumption of a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// MessageResponse is the provider-neutral result of one model call.
type MessageResponse struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
	Usage      Usage
}

// Provider sends one conversation snapshot to a model and returns its
// response. Implementations hold credentials and transport only, never
// conversation state, so a provider is safe to share across sessions.
type Provider interface {
	// SendMessages performs a single model call with the full conversation.
	SendMessages(ctx context.Context, systemPrompt string, messages []Message, tools []tooltypes.Tool) (*MessageResponse, error)
	// Model returns the configured model identifier.
	Model() string
}

// NewProvider creates the provider selected by the configuration.
func NewProvider(cfg llmtypes.Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, errors.Errorf("unsupported provider: %q (expected anthropic or openai)", cfg.Provider)
	}
}
