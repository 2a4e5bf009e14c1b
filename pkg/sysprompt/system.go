// Package sysprompt renders the system prompt. The prompt is recomputed
// before every model call so that skill activations made mid-conversation
// show up immediately.
package sysprompt

import (
	"embed"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/skills"
)

//go:embed templates/*
var templateFS embed.FS

const systemTemplate = "templates/system.tmpl"

// PromptContext carries everything the system template needs.
type PromptContext struct {
	WorkingDir string
	// Skills is the Level-1 catalog: name and description only.
	Skills []*skills.Skill
	// Activated holds the Level-2 content of activated skills, in
	// activation order.
	Activated []skills.ActivatedSkill
}

// Renderer renders prompt templates.
type Renderer struct {
	templates *template.Template
	parseErr  error
}

// NewRenderer parses the embedded templates once.
func NewRenderer() *Renderer {
	renderer := &Renderer{}
	renderer.templates, renderer.parseErr = template.ParseFS(templateFS, "templates/*.tmpl")
	return renderer
}

// Render executes a named template with the given context.
func (r *Renderer) Render(name string, ctx *PromptContext) (string, error) {
	if r.parseErr != nil {
		return "", errors.Wrap(r.parseErr, "failed to parse templates")
	}

	base := name[strings.LastIndex(name, "/")+1:]
	if r.templates.Lookup(base) == nil {
		return "", errors.Errorf("template %s not found", name)
	}

	var buf strings.Builder
	if err := r.templates.ExecuteTemplate(&buf, base, ctx); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %s", name)
	}
	return buf.String(), nil
}

var defaultRenderer = NewRenderer()

// SystemPrompt renders the system prompt for one model call: the base
// instructions, the Level-1 skill catalog and the Level-2 content of every
// activated skill.
func SystemPrompt(workingDir string, session *skills.Session) (string, error) {
	ctx := &PromptContext{
		WorkingDir: workingDir,
	}
	if session != nil {
		ctx.Skills = session.Skills()
		ctx.Activated = session.Activated()
	}
	return defaultRenderer.Render(systemTemplate, ctx)
}
