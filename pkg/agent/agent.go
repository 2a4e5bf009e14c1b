// Package agent runs the conversation loop: it sends the conversation to
// the provider, executes the tool calls the model requests, and repeats
// until the model answers without tools. The agent owns all conversation
// state; providers stay stateless.
package agent

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/sysprompt"
	"github.com/skillet-ai/skillet/pkg/telemetry"
	"github.com/skillet-ai/skillet/pkg/tools"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

const defaultMaxTurns = 50

var tracer = telemetry.Tracer("skillet.agent")

// ErrMaxTurnsExceeded indicates the model kept requesting tools past the
// configured turn budget.
var ErrMaxTurnsExceeded = errors.New("maximum turns exceeded")

// Agent drives one conversation. Not safe for concurrent SendMessage
// calls; the mutex serializes them.
type Agent struct {
	provider llm.Provider
	state    tooltypes.State
	maxTurns int

	mu       sync.Mutex
	messages []llm.Message
	usage    llm.Usage
}

// Option configures an Agent.
type Option func(*Agent)

// WithMaxTurns bounds the model/tool round trips per user message.
func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

// New creates an agent over a provider and a session state.
func New(provider llm.Provider, state tooltypes.State, opts ...Option) *Agent {
	agent := &Agent{
		provider: provider,
		state:    state,
		maxTurns: defaultMaxTurns,
	}
	for _, opt := range opts {
		opt(agent)
	}
	return agent
}

// SendMessage appends a user message and runs the loop until the model
// stops calling tools or the turn budget runs out. It returns the final
// assistant text. The system prompt is recomputed before every model call
// so skill activations made by earlier turns are visible to later ones.
func (a *Agent) SendMessage(ctx context.Context, message string, handler llmtypes.MessageHandler) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, span := tracer.Start(ctx, "agent.send_message", trace.WithAttributes(
		attribute.String("session_id", a.state.SessionID()),
		attribute.String("model", a.provider.Model()),
	))
	defer span.End()

	a.messages = append(a.messages, llm.Message{Role: "user", Content: message})

	for turn := 0; turn < a.maxTurns; turn++ {
		systemPrompt, err := sysprompt.SystemPrompt(a.state.WorkingDir(), a.state.SkillSession())
		if err != nil {
			return "", errors.Wrap(err, "failed to render system prompt")
		}

		response, err := a.provider.SendMessages(ctx, systemPrompt, a.messages, a.state.Tools())
		if err != nil {
			return "", err
		}

		a.usage.InputTokens += response.Usage.InputTokens
		a.usage.OutputTokens += response.Usage.OutputTokens

		a.messages = append(a.messages, llm.Message{
			Role:      "assistant",
			Content:   response.Text,
			ToolCalls: response.ToolCalls,
		})

		if response.Text != "" {
			handler.HandleText(response.Text)
		}

		if len(response.ToolCalls) == 0 {
			handler.HandleDone()
			return response.Text, nil
		}

		logger.G(ctx).WithField("turn", turn).WithField("tool_calls", len(response.ToolCalls)).
			Debug("executing tool calls")

		// Tool calls run in the order the model produced them, and every
		// call gets a result message even when it fails.
		for _, call := range response.ToolCalls {
			handler.HandleToolUse(call.Name, call.Arguments)

			result := tools.RunTool(ctx, a.state, call.Name, call.Arguments)
			output := result.AssistantFacing()
			handler.HandleToolResult(call.Name, output)

			a.messages = append(a.messages, llm.Message{
				Role:       "tool",
				Content:    output,
				ToolCallID: call.ID,
				ToolError:  result.IsError(),
			})
		}
	}

	return "", errors.Wrapf(ErrMaxTurnsExceeded, "after %d turns", a.maxTurns)
}

// Messages returns a copy of the conversation so far.
func (a *Agent) Messages() []llm.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]llm.Message(nil), a.messages...)
}

// Usage returns the accumulated token usage of this conversation.
func (a *Agent) Usage() llm.Usage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usage
}
