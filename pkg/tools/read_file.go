package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// ReadFileTool returns the content of a file inside the working directory.
type ReadFileTool struct{}

// ReadFileInput defines the input parameters for read_file.
type ReadFileInput struct {
	Path string `json:"path" jsonschema:"description=The path of the file to read; relative paths are resolved against the working directory,required"`
}

// ReadFileToolResult carries the outcome of a read_file call.
type ReadFileToolResult struct {
	path    string
	content string
	err     string
}

// Name returns the tool name.
func (t *ReadFileTool) Name() string {
	return "read_file"
}

// Description returns the model-facing tool description.
func (t *ReadFileTool) Description() string {
	return `Reads a file and returns its contents as text.

This tool takes one parameter:
- path: The path of the file to read. Relative paths are resolved against the working directory; paths outside the working directory are rejected.
`
}

// GenerateSchema generates the JSON schema for the tool input.
func (t *ReadFileTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ReadFileInput]()
}

// ValidateInput checks the parameters before execution.
func (t *ReadFileTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ReadFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}

	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// TracingKVs returns tracing attributes for the call.
func (t *ReadFileTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ReadFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("path", input.Path),
	}, nil
}

// Execute reads the file after resolving the path inside the sandbox.
func (t *ReadFileTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ReadFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &ReadFileToolResult{err: err.Error()}
	}

	resolved, err := state.Resolve(input.Path)
	if err != nil {
		return &ReadFileToolResult{path: input.Path, err: err.Error()}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return &ReadFileToolResult{path: input.Path, err: fmt.Sprintf("file not found: %s", input.Path)}
		}
		return &ReadFileToolResult{path: input.Path, err: err.Error()}
	}
	if info.IsDir() {
		return &ReadFileToolResult{path: input.Path, err: fmt.Sprintf("not a file: %s is a directory", input.Path)}
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return &ReadFileToolResult{path: input.Path, err: err.Error()}
	}

	return &ReadFileToolResult{path: input.Path, content: string(content)}
}

// GetResult returns the file content.
func (r *ReadFileToolResult) GetResult() string {
	return r.content
}

// GetError returns the error message.
func (r *ReadFileToolResult) GetError() string {
	return r.err
}

// IsError reports whether the call failed.
func (r *ReadFileToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing renders the result for the model.
func (r *ReadFileToolResult) AssistantFacing() string {
	return tooltypes.StringifyToolResult(r.content, r.err)
}
