package skills

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrSkillNotFound indicates the requested skill was never discovered.
	ErrSkillNotFound = errors.New("skill not found")
	// ErrResourceNotFound indicates a Level-3 resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrPathEscape indicates a resource path resolved outside its skill
	// directory. Always rejected, never corrected.
	ErrPathEscape = errors.New("path escapes the skill directory")
)

// Session owns the per-conversation activation state. Discovery results
// are read-only and shareable; the Level-2 cache lives here so that
// independent sessions never leak activations into each other.
type Session struct {
	mu        sync.RWMutex
	skills    map[string]*Skill
	names     []string          // sorted skill names
	activated map[string]string // name -> cached Level-2 body
	order     []string          // activation order
}

// NewSession creates a session over the discovered skills.
func NewSession(discovered []*Skill) *Session {
	byName := make(map[string]*Skill, len(discovered))
	names := make([]string, 0, len(discovered))
	for _, skill := range discovered {
		if _, exists := byName[skill.Name]; exists {
			continue
		}
		byName[skill.Name] = skill
		names = append(names, skill.Name)
	}
	sort.Strings(names)

	return &Session{
		skills:    byName,
		names:     names,
		activated: make(map[string]string),
	}
}

// Skills returns the discovered skills in name order.
func (s *Session) Skills() []*Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Skill, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.skills[name])
	}
	return out
}

// Get returns a discovered skill by name.
func (s *Session) Get(name string) (*Skill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skill, ok := s.skills[name]
	return skill, ok
}

// Names returns the sorted skill names.
func (s *Session) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.names...)
}

// IsActive reports whether the skill has been activated in this session.
func (s *Session) IsActive(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.activated[name]
	return ok
}

// Activate performs Level-2 loading: it reads the SKILL.md body of the
// named skill and caches it for the rest of the session. Re-activation is
// idempotent and served from the cache without touching disk. An unknown
// name fails with ErrSkillNotFound before any filesystem access.
func (s *Session) Activate(name string) (content string, already bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skill, ok := s.skills[name]
	if !ok {
		return "", false, errors.Wrapf(ErrSkillNotFound, "skill %q", name)
	}

	if cached, ok := s.activated[name]; ok {
		return cached, true, nil
	}

	raw, err := os.ReadFile(filepath.Join(skill.Directory, skillFileName))
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read skill %q", name)
	}

	body := extractBody(string(raw))
	s.activated[name] = body
	s.order = append(s.order, name)
	return body, false, nil
}

// Activated returns the activated skills in activation order, with their
// cached Level-2 content.
func (s *Session) Activated() []ActivatedSkill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ActivatedSkill, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, ActivatedSkill{
			Skill:   s.skills[name],
			Content: s.activated[name],
		})
	}
	return out
}

// LoadResource performs Level-3 loading: it reads a supporting file
// resolved against the skill's own directory. Resolution must stay inside
// that directory; traversal via ".." or absolute paths pointing elsewhere
// fails with ErrPathEscape. Resources are read fresh on every call.
func (s *Session) LoadResource(skillName, resourcePath string) (string, error) {
	s.mu.RLock()
	skill, ok := s.skills[skillName]
	s.mu.RUnlock()
	if !ok {
		return "", errors.Wrapf(ErrSkillNotFound, "skill %q", skillName)
	}

	resolved, err := resolveWithin(skill.Directory, resourcePath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrResourceNotFound, "resource %q", resourcePath)
		}
		return "", errors.Wrapf(err, "failed to stat resource %q", resourcePath)
	}
	if info.IsDir() {
		return "", errors.Errorf("resource %q is a directory, not a file", resourcePath)
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read resource %q", resourcePath)
	}
	return string(content), nil
}

// resolveWithin resolves path against root and rejects any result that
// falls outside of root.
func resolveWithin(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve root directory")
	}

	var candidate string
	if filepath.IsAbs(path) {
		candidate = filepath.Clean(path)
	} else {
		candidate = filepath.Join(absRoot, path)
	}

	if candidate != absRoot && !strings.HasPrefix(candidate, absRoot+string(os.PathSeparator)) {
		return "", errors.Wrapf(ErrPathEscape, "path %q", path)
	}
	return candidate, nil
}
