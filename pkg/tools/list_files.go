package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// ListFilesTool lists the entries of a directory inside the working
// directory.
type ListFilesTool struct{}

// ListFilesInput defines the input parameters for list_files.
type ListFilesInput struct {
	Path string `json:"path,omitempty" jsonschema:"description=The directory to list; defaults to the working directory when omitted"`
}

// ListFilesToolResult carries the outcome of a list_files call.
type ListFilesToolResult struct {
	path    string
	entries []string
	err     string
}

// Name returns the tool name.
func (t *ListFilesTool) Name() string {
	return "list_files"
}

// Description returns the model-facing tool description.
func (t *ListFilesTool) Description() string {
	return `Lists the entries of a directory in sorted order.

This tool takes one optional parameter:
- path: The directory to list. Relative paths are resolved against the working directory; when omitted the working directory itself is listed.

Directories are suffixed with "/" to distinguish them from files.
`
}

// GenerateSchema generates the JSON schema for the tool input.
func (t *ListFilesTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ListFilesInput]()
}

// ValidateInput checks the parameters before execution.
func (t *ListFilesTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	return nil
}

// TracingKVs returns tracing attributes for the call.
func (t *ListFilesTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("path", input.Path),
	}, nil
}

// Execute lists the directory after resolving the path inside the sandbox.
func (t *ListFilesTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &ListFilesToolResult{err: err.Error()}
	}

	path := input.Path
	if path == "" {
		path = "."
	}

	resolved, err := state.Resolve(path)
	if err != nil {
		return &ListFilesToolResult{path: path, err: err.Error()}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return &ListFilesToolResult{path: path, err: fmt.Sprintf("directory not found: %s", path)}
		}
		return &ListFilesToolResult{path: path, err: err.Error()}
	}
	if !info.IsDir() {
		return &ListFilesToolResult{path: path, err: fmt.Sprintf("not a directory: %s", path)}
	}

	dirEntries, err := os.ReadDir(resolved)
	if err != nil {
		return &ListFilesToolResult{path: path, err: err.Error()}
	}

	entries := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		entries = append(entries, name)
	}
	sort.Strings(entries)

	return &ListFilesToolResult{path: path, entries: entries}
}

// GetResult returns the listing, one entry per line.
func (r *ListFilesToolResult) GetResult() string {
	if len(r.entries) == 0 {
		return fmt.Sprintf("directory %s is empty", r.path)
	}
	return strings.Join(r.entries, "\n")
}

// GetError returns the error message.
func (r *ListFilesToolResult) GetError() string {
	return r.err
}

// IsError reports whether the call failed.
func (r *ListFilesToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing renders the result for the model.
func (r *ListFilesToolResult) AssistantFacing() string {
	if r.IsError() {
		return tooltypes.StringifyToolResult("", r.err)
	}
	return tooltypes.StringifyToolResult(r.GetResult(), "")
}
