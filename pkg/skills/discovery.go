package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/skillet-ai/skillet/pkg/logger"
)

const skillFileName = "SKILL.md"

// Discovery scans a skills root directory for skill folders.
type Discovery struct {
	skillsDir string
}

// Option configures a Discovery.
type Option func(*Discovery) error

// WithSkillsDir sets the root directory scanned for skills.
func WithSkillsDir(dir string) Option {
	return func(d *Discovery) error {
		if dir == "" {
			return errors.New("skills directory must not be empty")
		}
		d.skillsDir = dir
		return nil
	}
}

// NewDiscovery creates a skill discovery rooted at ./skills unless
// configured otherwise.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{skillsDir: "./skills"}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// DiscoverSkills scans the immediate subdirectories of the skills root and
// returns Level-1 metadata for every directory holding a well-formed
// SKILL.md, sorted by name for reproducibility. Malformed skills are
// skipped with a warning; a missing or empty root yields an empty result.
func (d *Discovery) DiscoverSkills(ctx context.Context) ([]*Skill, error) {
	log := logger.G(ctx)

	entries, err := os.ReadDir(d.skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("dir", d.skillsDir).Debug("skills directory does not exist")
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read skills directory")
	}

	var discovered []*Skill
	for _, entry := range entries {
		entryPath := filepath.Join(d.skillsDir, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skill, err := loadMetadata(filepath.Join(entryPath, skillFileName))
		if err != nil {
			if !os.IsNotExist(errors.Cause(err)) {
				log.WithError(err).WithField("dir", entryPath).Warn("skipping skill with invalid SKILL.md")
			}
			continue
		}

		skill.Directory = entryPath
		discovered = append(discovered, skill)
	}

	sort.Slice(discovered, func(i, j int) bool {
		return discovered[i].Name < discovered[j].Name
	})

	return discovered, nil
}

// loadMetadata parses the frontmatter of a SKILL.md file into Level-1
// metadata. The body is deliberately not retained.
func loadMetadata(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	license, _ := metaData["license"].(string)

	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:        name,
		Description: description,
		License:     license,
	}, nil
}

// extractBody strips the YAML frontmatter block and returns the
// instruction body. Content without a well-formed frontmatter block is
// returned untouched.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
