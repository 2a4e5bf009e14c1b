// Package tools defines the contracts shared between the tool
// implementations, the agent and the LLM providers.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-ai/skillet/pkg/skills"
)

// Tool is the interface every tool in the catalog implements. The schema
// and description are surfaced to the model; validation runs before
// execution so malformed calls never reach a handler.
type Tool interface {
	GenerateSchema() *jsonschema.Schema
	Name() string
	Description() string
	ValidateInput(state State, parameters string) error
	Execute(ctx context.Context, state State, parameters string) ToolResult
	TracingKVs(parameters string) ([]attribute.KeyValue, error)
}

// ToolResult is the uniform result envelope returned by tool execution.
type ToolResult interface {
	GetResult() string
	GetError() string
	IsError() bool
	// AssistantFacing renders the result the way it is fed back to the model.
	AssistantFacing() string
}

// BaseToolResult is a plain result used for dispatch-level failures
// (unknown tool, invalid arguments).
type BaseToolResult struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// GetResult returns the success payload.
func (r BaseToolResult) GetResult() string { return r.Result }

// GetError returns the error message.
func (r BaseToolResult) GetError() string { return r.Error }

// IsError reports whether the result carries an error.
func (r BaseToolResult) IsError() bool { return r.Error != "" }

// AssistantFacing renders the result envelope.
func (r BaseToolResult) AssistantFacing() string {
	return StringifyToolResult(r.Result, r.Error)
}

// StringifyToolResult renders a result/error pair into the envelope the
// model sees. Errors always come first so the model notices them.
func StringifyToolResult(result, err string) string {
	out := ""
	if err != "" {
		out = fmt.Sprintf("<error>\n%s\n</error>\n", err)
	}
	if result != "" {
		out += fmt.Sprintf("<result>\n%s\n</result>\n", result)
	}
	if out == "" {
		out = "<result>\n(no output)\n</result>\n"
	}
	return out
}

// State carries the per-session context shared by all tools: the sandbox
// root, the bash timeout, and the skill session that owns the Level-2
// activation cache. One State per conversation; never shared across
// sessions.
type State interface {
	SessionID() string
	WorkingDir() string
	// Resolve resolves path against the working directory and fails when
	// the resolved path falls outside of it.
	Resolve(path string) (string, error)
	BashTimeout() time.Duration
	SkillSession() *skills.Session
	Tools() []Tool
}
