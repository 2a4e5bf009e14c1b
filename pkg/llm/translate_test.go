package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	"github.com/skillet-ai/skillet/pkg/tools"
)

func testConfig(provider, model string) llmtypes.Config {
	return llmtypes.Config{
		Provider: provider,
		Model:    model,
		APIKey:   "test-key",
	}
}

func TestToAnthropicMessages(t *testing.T) {
	t.Run("groups consecutive tool results into one user message", func(t *testing.T) {
		params, err := toAnthropicMessages([]Message{
			{Role: "user", Content: "do two things"},
			{Role: "assistant", ToolCalls: []ToolCall{
				{ID: "call_1", Name: "read_file", Arguments: `{"path":"a.txt"}`},
				{ID: "call_2", Name: "read_file", Arguments: `{"path":"b.txt"}`},
			}},
			{Role: "tool", ToolCallID: "call_1", Content: "a"},
			{Role: "tool", ToolCallID: "call_2", Content: "b", ToolError: true},
		})
		require.NoError(t, err)

		// user, assistant, then a single user message with both results
		require.Len(t, params, 3)
		assert.Len(t, params[2].Content, 2)
	})

	t.Run("assistant text and tool call share one message", func(t *testing.T) {
		params, err := toAnthropicMessages([]Message{
			{Role: "assistant", Content: "on it", ToolCalls: []ToolCall{
				{ID: "call_1", Name: "list_files", Arguments: `{}`},
			}},
		})
		require.NoError(t, err)
		require.Len(t, params, 1)
		assert.Len(t, params[0].Content, 2)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		_, err := toAnthropicMessages([]Message{{Role: "system", Content: "x"}})
		assert.Error(t, err)
	})
}

func TestToOpenAIMessage(t *testing.T) {
	t.Run("assistant with tool calls", func(t *testing.T) {
		converted, err := toOpenAIMessage(Message{
			Role: "assistant",
			ToolCalls: []ToolCall{
				{ID: "call_1", Name: "execute_bash", Arguments: `{"command":"ls"}`},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, openai.ChatMessageRoleAssistant, converted.Role)
		require.Len(t, converted.ToolCalls, 1)
		assert.Equal(t, "call_1", converted.ToolCalls[0].ID)
		assert.Equal(t, openai.ToolTypeFunction, converted.ToolCalls[0].Type)
		assert.Equal(t, "execute_bash", converted.ToolCalls[0].Function.Name)
		assert.Equal(t, `{"command":"ls"}`, converted.ToolCalls[0].Function.Arguments)
	})

	t.Run("tool result carries the call id", func(t *testing.T) {
		converted, err := toOpenAIMessage(Message{Role: "tool", ToolCallID: "call_1", Content: "done"})
		require.NoError(t, err)
		assert.Equal(t, openai.ChatMessageRoleTool, converted.Role)
		assert.Equal(t, "call_1", converted.ToolCallID)
		assert.Equal(t, "done", converted.Content)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		_, err := toOpenAIMessage(Message{Role: "system"})
		assert.Error(t, err)
	})
}

func TestToOpenAITools(t *testing.T) {
	converted := toOpenAITools(tools.DefaultTools())
	require.Len(t, converted, 6)

	for _, tool := range converted {
		assert.Equal(t, openai.ToolTypeFunction, tool.Type)
		require.NotNil(t, tool.Function)
		assert.NotEmpty(t, tool.Function.Name)
		assert.NotEmpty(t, tool.Function.Description)

		params, ok := tool.Function.Parameters.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "object", params["type"])
	}
}

func TestToAnthropicTools(t *testing.T) {
	converted := toAnthropicTools(tools.DefaultTools())
	require.Len(t, converted, 6)

	for _, tool := range converted {
		require.NotNil(t, tool.OfTool)
		assert.NotEmpty(t, tool.OfTool.Name)
		assert.NotNil(t, tool.OfTool.InputSchema.Properties)
	}
}
