// Package tools implements the fixed tool catalog exposed to the model:
// file and directory operations, shell execution and skill activation.
// Every tool validates its input against a declared schema before
// execution and returns a uniform result envelope.
package tools

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/telemetry"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// GenerateSchema reflects a JSON schema from an input struct.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

// toolRegistry holds every tool in the catalog by name. The set is
// closed: an unregistered name is a configuration error at startup, not a
// runtime surprise.
var toolRegistry = map[string]tooltypes.Tool{
	"read_file":        &ReadFileTool{},
	"write_file":       &WriteFileTool{},
	"list_files":       &ListFilesTool{},
	"create_directory": &CreateDirectoryTool{},
	"execute_bash":     &ExecuteBashTool{},
	"use_skill":        &UseSkillTool{},
}

// defaultToolNames fixes the catalog order presented to the model.
var defaultToolNames = []string{
	"read_file",
	"write_file",
	"list_files",
	"create_directory",
	"execute_bash",
	"use_skill",
}

// ValidateTools returns an error when any name is not registered.
func ValidateTools(toolNames []string) error {
	for _, toolName := range toolNames {
		if _, exists := toolRegistry[toolName]; !exists {
			return errors.Errorf("unknown tool: %s", toolName)
		}
	}
	return nil
}

// DefaultTools returns the full catalog in its fixed order.
func DefaultTools() []tooltypes.Tool {
	tools := make([]tooltypes.Tool, 0, len(defaultToolNames))
	for _, name := range defaultToolNames {
		tools = append(tools, toolRegistry[name])
	}
	return tools
}

var tracer = telemetry.Tracer("skillet.tools")

// RunTool dispatches a tool call by name: it looks up the handler,
// validates the arguments against the declared schema, executes, and
// returns the uniform result envelope. Failures become structured error
// results so the caller can feed them back into the conversation without
// type-specific branching.
func RunTool(ctx context.Context, state tooltypes.State, toolName string, parameters string) tooltypes.ToolResult {
	tool, exists := toolRegistry[toolName]
	if !exists {
		return tooltypes.BaseToolResult{
			Error: fmt.Sprintf("unknown tool: %s", toolName),
		}
	}

	kvs, err := tool.TracingKVs(parameters)
	if err != nil {
		logger.G(ctx).WithError(err).Debug("failed to get tracing kvs")
	}

	ctx, span := tracer.Start(
		ctx,
		fmt.Sprintf("tools.run_tool.%s", toolName),
		trace.WithAttributes(kvs...),
	)
	defer span.End()

	if err := tool.ValidateInput(state, parameters); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return tooltypes.BaseToolResult{
			Error: errors.Wrap(err, "invalid arguments").Error(),
		}
	}

	result := tool.Execute(ctx, state, parameters)

	if result.IsError() {
		span.SetStatus(codes.Error, result.GetError())
		span.RecordError(errors.New(result.GetError()))
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return result
}
