package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-ai/skillet/pkg/logger"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// UseSkillTool activates a skill for the current session. Activation loads
// the skill's full instructions into the system prompt; the tool result
// itself only acknowledges the switch.
type UseSkillTool struct{}

// UseSkillInput defines the input parameters for use_skill.
type UseSkillInput struct {
	SkillName string `json:"skill_name" jsonschema:"description=The name of the skill to activate,required"`
}

// UseSkillToolResult carries the outcome of a use_skill call.
type UseSkillToolResult struct {
	skillName string
	already   bool
	err       string
}

// Name returns the tool name.
func (t *UseSkillTool) Name() string {
	return "use_skill"
}

// Description returns the model-facing tool description.
func (t *UseSkillTool) Description() string {
	return `Activates a skill by name, loading its full instructions into your system prompt.

This tool takes one parameter:
- skill_name: The name of the skill to activate, exactly as it appears in the available skills list.

Use this tool when the current task matches a skill's description. After activation the skill's complete instructions appear in your system prompt; follow them for the rest of the task. Activating an already active skill is a no-op.
`
}

// GenerateSchema generates the JSON schema for the tool input.
func (t *UseSkillTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[UseSkillInput]()
}

// ValidateInput checks the parameters before execution.
func (t *UseSkillTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input UseSkillInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}

	if input.SkillName == "" {
		return errors.New("skill_name is required")
	}
	return nil
}

// TracingKVs returns tracing attributes for the call.
func (t *UseSkillTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input UseSkillInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}

	return []attribute.KeyValue{
		attribute.String("skill_name", input.SkillName),
	}, nil
}

// Execute activates the skill in the session. An unknown name fails with
// the list of available skills so the model can correct itself.
func (t *UseSkillTool) Execute(ctx context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input UseSkillInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return &UseSkillToolResult{err: err.Error()}
	}

	session := state.SkillSession()
	_, already, err := session.Activate(input.SkillName)
	if err != nil {
		names := session.Names()
		if len(names) == 0 {
			return &UseSkillToolResult{
				skillName: input.SkillName,
				err:       fmt.Sprintf("skill %q not found: no skills are available", input.SkillName),
			}
		}
		return &UseSkillToolResult{
			skillName: input.SkillName,
			err: fmt.Sprintf("skill %q not found. Available skills: %s",
				input.SkillName, strings.Join(names, ", ")),
		}
	}

	logger.G(ctx).WithField("skill", input.SkillName).WithField("already_active", already).
		Info("skill activated")

	return &UseSkillToolResult{skillName: input.SkillName, already: already}
}

// GetResult returns the activation acknowledgement.
func (r *UseSkillToolResult) GetResult() string {
	if r.already {
		return fmt.Sprintf("skill %q is already active. Its instructions are available in your system prompt.", r.skillName)
	}
	return fmt.Sprintf("skill %q activated. Its instructions are now available in your system prompt.", r.skillName)
}

// GetError returns the error message.
func (r *UseSkillToolResult) GetError() string {
	return r.err
}

// IsError reports whether the call failed.
func (r *UseSkillToolResult) IsError() bool {
	return r.err != ""
}

// AssistantFacing renders the result for the model.
func (r *UseSkillToolResult) AssistantFacing() string {
	if r.IsError() {
		return tooltypes.StringifyToolResult("", r.err)
	}
	return tooltypes.StringifyToolResult(r.GetResult(), "")
}
