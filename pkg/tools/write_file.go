package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// WriteFileTool creates or overwrites a file inside the working directory.
type WriteFileTool struct{}

// WriteFileInput defines the input parameters for write_file.
type WriteFileInput struct {
	Path    string `json:"path" jsonschema:"description=The path of the file to write; relative paths are resolved against the working directory,required"`
	Content string `json:"content" jsonschema:"description=The content to write to the file,required"`
}

// WriteFileToolResult carries the outcome of a write_file call.
type WriteFileToolResult struct {
	path string
	size int
	err  string
}

// Name returns the tool name.
func (t *WriteFileTool) Name() string {
	return "write_file"
}

// Description returns the model-facing tool description.
func (t *WriteFileTool) Description() string {
	return `Writes content to a file, creating it if it does not exist and overwriting it if it does.

This tool takes two parameters:
- path: The path of the file to write. Relative paths are resolved against the working directory; paths outside the working directory are rejected.
- content: The content to write.

Missing parent directories are created automatically. Files are created with 0644 permissions.
`
}

// GenerateSchema generates the JSON schema for the tool input.
func (t *WriteFileTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[WriteFileInput]()
}

// ValidateInput checks the parameters before execution.
func (t *WriteFileTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input WriteFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}

	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// TracingKVs returns tracing attributes for the call.
func (t *WriteFileTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input WriteFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("path", input.Path),
		attribute.Int("size", len(input.Content)),
	}, nil
}

// Execute writes the file after resolving the path inside the sandbox.
// Parent directories are created as needed; the escape check on the final
// path covers them since they live underneath it.
func (t *WriteFileTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input WriteFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &WriteFileToolResult{err: err.Error()}
	}

	resolved, err := state.Resolve(input.Path)
	if err != nil {
		return &WriteFileToolResult{path: input.Path, err: err.Error()}
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return &WriteFileToolResult{path: input.Path, err: fmt.Sprintf("failed to create parent directories: %s", err)}
	}

	if err := os.WriteFile(resolved, []byte(input.Content), 0o644); err != nil {
		return &WriteFileToolResult{path: input.Path, err: fmt.Sprintf("failed to write file: %s", err)}
	}

	return &WriteFileToolResult{path: input.Path, size: len(input.Content)}
}

// GetResult returns the success marker.
func (r *WriteFileToolResult) GetResult() string {
	return fmt.Sprintf("file %s has been written successfully (%d bytes)", r.path, r.size)
}

// GetError returns the error message.
func (r *WriteFileToolResult) GetError() string {
	return r.err
}

// IsError reports whether the call failed.
func (r *WriteFileToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing renders the result for the model.
func (r *WriteFileToolResult) AssistantFacing() string {
	if r.IsError() {
		return tooltypes.StringifyToolResult("", r.err)
	}
	return tooltypes.StringifyToolResult(r.GetResult(), "")
}
