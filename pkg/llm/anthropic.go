package llm

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicProvider talks to the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

var _ Provider = &AnthropicProvider{}

// NewAnthropicProvider creates a provider for the Anthropic API. The API
// key comes from the configuration or the ANTHROPIC_API_KEY environment
// variable.
func NewAnthropicProvider(cfg llmtypes.Config) (*AnthropicProvider, error) {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	return &AnthropicProvider{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Model returns the configured model identifier.
func (p *AnthropicProvider) Model() string {
	return p.model
}

// SendMessages performs one Messages API call with the full conversation.
func (p *AnthropicProvider) SendMessages(ctx context.Context, systemPrompt string, messages []Message, tools []tooltypes.Tool) (*MessageResponse, error) {
	params, err := toAnthropicMessages(messages)
	if err != nil {
		return nil, err
	}

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: params,
		Tools:    toAnthropicTools(tools),
	})
	if err != nil {
		return nil, errors.Wrap(err, "anthropic call failed")
	}

	result := &MessageResponse{
		StopReason: string(response.StopReason),
		Usage: Usage{
			InputTokens:  int(response.Usage.InputTokens),
			OutputTokens: int(response.Usage.OutputTokens),
		},
	}

	for _, block := range response.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			if result.Text != "" {
				result.Text += "\n"
			}
			result.Text += variant.Text
		case anthropic.ToolUseBlock:
			result.ToolCalls = append(result.ToolCalls, ToolCall{
				ID:        variant.ID,
				Name:      variant.Name,
				Arguments: variant.JSON.Input.Raw(),
			})
		}
	}

	return result, nil
}

// toAnthropicMessages rebuilds the wire-format conversation. The Messages
// API expects tool results as user-role tool_result blocks, so consecutive
// tool messages collapse into a single user message.
func toAnthropicMessages(messages []Message) ([]anthropic.MessageParam, error) {
	out := make([]anthropic.MessageParam, 0, len(messages))

	for i := 0; i < len(messages); i++ {
		msg := messages[i]
		switch msg.Role {
		case "user":
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))

		case "assistant":
			blocks := []anthropic.ContentBlockParamUnion{}
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, json.RawMessage(call.Arguments), call.Name))
			}
			if len(blocks) == 0 {
				blocks = append(blocks, anthropic.NewTextBlock(""))
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))

		case "tool":
			blocks := []anthropic.ContentBlockParamUnion{
				anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, msg.ToolError),
			}
			for i+1 < len(messages) && messages[i+1].Role == "tool" {
				i++
				next := messages[i]
				blocks = append(blocks, anthropic.NewToolResultBlock(next.ToolCallID, next.Content, next.ToolError))
			}
			out = append(out, anthropic.NewUserMessage(blocks...))

		default:
			return nil, errors.Errorf("unsupported message role: %q", msg.Role)
		}
	}

	return out, nil
}

func toAnthropicTools(tools []tooltypes.Tool) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		anthropicTools[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name(),
				Description: anthropic.String(tool.Description()),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: tool.GenerateSchema().Properties,
				},
			},
		}
	}
	return anthropicTools
}
