package llm

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIProvider talks to the OpenAI chat-completions API or any
// compatible endpoint selected via BaseURL.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

var _ Provider = &OpenAIProvider{}

// NewOpenAIProvider creates a provider for an OpenAI-compatible API.
func NewOpenAIProvider(cfg llmtypes.Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is not set")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Model returns the configured model identifier.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// SendMessages performs one chat-completion call with the full
// conversation.
func (p *OpenAIProvider) SendMessages(ctx context.Context, systemPrompt string, messages []Message, tools []tooltypes.Tool) (*MessageResponse, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range messages {
		converted, err := toOpenAIMessage(msg)
		if err != nil {
			return nil, err
		}
		chatMessages = append(chatMessages, converted)
	}

	response, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            chatMessages,
		Tools:               toOpenAITools(tools),
		MaxCompletionTokens: p.maxTokens,
	})
	if err != nil {
		return nil, errors.Wrap(err, "openai call failed")
	}
	if len(response.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	choice := response.Choices[0]
	result := &MessageResponse{
		Text:       choice.Message.Content,
		StopReason: string(choice.FinishReason),
		Usage: Usage{
			InputTokens:  response.Usage.PromptTokens,
			OutputTokens: response.Usage.CompletionTokens,
		},
	}
	for _, call := range choice.Message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	return result, nil
}

func toOpenAIMessage(msg Message) (openai.ChatCompletionMessage, error) {
	switch msg.Role {
	case "user":
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: msg.Content,
		}, nil

	case "assistant":
		converted := openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: msg.Content,
		}
		for _, call := range msg.ToolCalls {
			converted.ToolCalls = append(converted.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		return converted, nil

	case "tool":
		return openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}, nil

	default:
		return openai.ChatCompletionMessage{}, errors.Errorf("unsupported message role: %q", msg.Role)
	}
}

func toOpenAITools(tools []tooltypes.Tool) []openai.Tool {
	openaiTools := make([]openai.Tool, len(tools))
	for i, tool := range tools {
		schemaBytes, _ := json.Marshal(tool.GenerateSchema())
		var jsonSchema map[string]interface{}
		_ = json.Unmarshal(schemaBytes, &jsonSchema)

		openaiTools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  jsonSchema,
			},
		}
	}
	return openaiTools
}
