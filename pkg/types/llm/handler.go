package llm

import (
	"fmt"
	"strings"
)

// MessageHandler receives conversation events as the agent processes a turn.
type MessageHandler interface {
	HandleText(text string)
	HandleToolUse(toolName string, input string)
	HandleToolResult(toolName string, result string)
	HandleDone()
}

// ConsoleMessageHandler prints conversation events to the console.
type ConsoleMessageHandler struct {
	Silent bool
}

// HandleText prints assistant text.
func (h *ConsoleMessageHandler) HandleText(text string) {
	if !h.Silent {
		fmt.Println(text)
		fmt.Println()
	}
}

// HandleToolUse prints the tool invocation.
func (h *ConsoleMessageHandler) HandleToolUse(toolName string, input string) {
	if !h.Silent {
		fmt.Printf("🔧 %s: %s\n\n", toolName, input)
	}
}

// HandleToolResult prints the tool result.
func (h *ConsoleMessageHandler) HandleToolResult(_ string, result string) {
	if !h.Silent {
		fmt.Printf("🔄 %s\n\n", result)
	}
}

// HandleDone is a no-op for the console handler.
func (h *ConsoleMessageHandler) HandleDone() {}

// StringCollectorHandler collects assistant text into a string, optionally
// echoing events to the console.
type StringCollectorHandler struct {
	Silent bool
	text   strings.Builder
}

// HandleText collects assistant text.
func (h *StringCollectorHandler) HandleText(text string) {
	h.text.WriteString(text)
	h.text.WriteString("\n")

	if !h.Silent {
		fmt.Println(text)
		fmt.Println()
	}
}

// HandleToolUse echoes the tool invocation unless silent.
func (h *StringCollectorHandler) HandleToolUse(toolName string, input string) {
	if !h.Silent {
		fmt.Printf("🔧 %s: %s\n\n", toolName, input)
	}
}

// HandleToolResult echoes the tool result unless silent.
func (h *StringCollectorHandler) HandleToolResult(_ string, result string) {
	if !h.Silent {
		fmt.Printf("🔄 %s\n\n", result)
	}
}

// HandleDone is a no-op for the string collector.
func (h *StringCollectorHandler) HandleDone() {}

// CollectedText returns everything collected so far.
func (h *StringCollectorHandler) CollectedText() string {
	return h.text.String()
}
