package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// ExecuteBashTool runs a shell command in the working directory.
type ExecuteBashTool struct{}

// ExecuteBashInput defines the input parameters for execute_bash.
type ExecuteBashInput struct {
	Command string `json:"command" jsonschema:"description=The bash command to execute in the working directory,required"`
	Timeout int    `json:"timeout,omitempty" jsonschema:"description=Optional timeout in seconds; capped at the configured maximum"`
}

// ExecuteBashToolResult carries the outcome of an execute_bash call.
type ExecuteBashToolResult struct {
	command  string
	output   string
	exitCode int
	err      string
}

// Name returns the tool name.
func (t *ExecuteBashTool) Name() string {
	return "execute_bash"
}

// Description returns the model-facing tool description.
func (t *ExecuteBashTool) Description() string {
	return `Executes a bash command in the working directory and returns its combined stdout and stderr.

This tool takes two parameters:
- command: The bash command to execute.
- timeout: Optional timeout in seconds. Values above the configured maximum are capped to it.

The command runs with the working directory as its current directory and is killed when it exceeds the timeout. A non-zero exit code is reported as an error together with any output the command produced.
`
}

// GenerateSchema generates the JSON schema for the tool input.
func (t *ExecuteBashTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ExecuteBashInput]()
}

// ValidateInput checks the parameters before execution.
func (t *ExecuteBashTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ExecuteBashInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}

	if input.Command == "" {
		return errors.New("command is required")
	}
	if input.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// TracingKVs returns tracing attributes for the call.
func (t *ExecuteBashTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ExecuteBashInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("command", input.Command),
		attribute.Int("timeout", input.Timeout),
	}, nil
}

// Execute runs the command under the session timeout. Output is captured
// even on failure so the model can see what the command printed before it
// exited or was killed.
func (t *ExecuteBashTool) Execute(ctx context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ExecuteBashInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &ExecuteBashToolResult{err: err.Error()}
	}

	timeout := state.BashTimeout()
	if input.Timeout > 0 {
		if requested := time.Duration(input.Timeout) * time.Second; requested < timeout {
			timeout = requested
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", input.Command)
	cmd.Dir = state.WorkingDir()

	output, err := cmd.CombinedOutput()
	result := &ExecuteBashToolResult{
		command: input.Command,
		output:  string(output),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.err = fmt.Sprintf("command timed out after %s", timeout)
		return result
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.exitCode = exitErr.ExitCode()
			result.err = fmt.Sprintf("command exited with status %d", result.exitCode)
		} else {
			result.err = fmt.Sprintf("failed to run command: %s", err)
		}
		return result
	}

	return result
}

// GetResult returns the combined output of the command.
func (r *ExecuteBashToolResult) GetResult() string {
	return r.output
}

// GetError returns the error message.
func (r *ExecuteBashToolResult) GetError() string {
	return r.err
}

// IsError reports whether the call failed.
func (r *ExecuteBashToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing renders the result for the model. Failed commands still
// include their output so the model can diagnose them.
func (r *ExecuteBashToolResult) AssistantFacing() string {
	return tooltypes.StringifyToolResult(r.output, r.err)
}
