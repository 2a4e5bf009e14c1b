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

// CreateDirectoryTool creates a directory inside the working directory.
type CreateDirectoryTool struct{}

// CreateDirectoryInput defines the input parameters for create_directory.
type CreateDirectoryInput struct {
	Path string `json:"path" jsonschema:"description=The path of the directory to create; relative paths are resolved against the working directory,required"`
}

// CreateDirectoryToolResult carries the outcome of a create_directory call.
type CreateDirectoryToolResult struct {
	path string
	err  string
}

// Name returns the tool name.
func (t *CreateDirectoryTool) Name() string {
	return "create_directory"
}

// Description returns the model-facing tool description.
func (t *CreateDirectoryTool) Description() string {
	return `Creates a directory, including any missing parent directories.

This tool takes one parameter:
- path: The path of the directory to create. Relative paths are resolved against the working directory; paths outside the working directory are rejected.

Creating a directory that already exists succeeds without change.
`
}

// GenerateSchema generates the JSON schema for the tool input.
func (t *CreateDirectoryTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[CreateDirectoryInput]()
}

// ValidateInput checks the parameters before execution.
func (t *CreateDirectoryTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input CreateDirectoryInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}

	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// TracingKVs returns tracing attributes for the call.
func (t *CreateDirectoryTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input CreateDirectoryInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("path", input.Path),
	}, nil
}

// Execute creates the directory after resolving the path inside the sandbox.
// MkdirAll is idempotent, so re-creating an existing directory succeeds, but
// a file occupying the path is an error.
func (t *CreateDirectoryTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input CreateDirectoryInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &CreateDirectoryToolResult{err: err.Error()}
	}

	resolved, err := state.Resolve(input.Path)
	if err != nil {
		return &CreateDirectoryToolResult{path: input.Path, err: err.Error()}
	}

	if info, err := os.Stat(resolved); err == nil && !info.IsDir() {
		return &CreateDirectoryToolResult{path: input.Path, err: fmt.Sprintf("path exists and is not a directory: %s", input.Path)}
	}

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return &CreateDirectoryToolResult{path: input.Path, err: fmt.Sprintf("failed to create directory: %s", err)}
	}

	return &CreateDirectoryToolResult{path: input.Path}
}

// GetResult returns the success marker.
func (r *CreateDirectoryToolResult) GetResult() string {
	return fmt.Sprintf("directory %s has been created successfully", r.path)
}

// GetError returns the error message.
func (r *CreateDirectoryToolResult) GetError() string {
	return r.err
}

// IsError reports whether the call failed.
func (r *CreateDirectoryToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing renders the result for the model.
func (r *CreateDirectoryToolResult) AssistantFacing() string {
	if r.IsError() {
		return tooltypes.StringifyToolResult("", r.err)
	}
	return tooltypes.StringifyToolResult(r.GetResult(), "")
}
