package skills

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discoverTestSkills(t *testing.T, tmpDir string) []*Skill {
	t.Helper()
	discovery, err := NewDiscovery(WithSkillsDir(tmpDir))
	require.NoError(t, err)
	discovered, err := discovery.DiscoverSkills(context.Background())
	require.NoError(t, err)
	return discovered
}

func TestActivate(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, tmpDir, "demo", `---
name: demo
description: "test skill"
---

# Demo

Full instructions here.
`)

	session := NewSession(discoverTestSkills(t, tmpDir))

	content, already, err := session.Activate("demo")
	require.NoError(t, err)
	assert.False(t, already)
	assert.Contains(t, content, "Full instructions here.")
	assert.NotContains(t, content, "description:")
	assert.True(t, session.IsActive("demo"))
}

func TestActivateUnknownSkill(t *testing.T) {
	session := NewSession(nil)

	_, _, err := session.Activate("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSkillNotFound))
	assert.Empty(t, session.Activated())
}

func TestActivateCachesContent(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := writeSkill(t, tmpDir, "demo", "---\nname: demo\ndescription: d\n---\noriginal body\n")

	session := NewSession(discoverTestSkills(t, tmpDir))

	first, already, err := session.Activate("demo")
	require.NoError(t, err)
	assert.False(t, already)

	// Rewrite the file; the cached content must win for the session.
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"),
		[]byte("---\nname: demo\ndescription: d\n---\nedited body\n"), 0o644))

	second, already, err := session.Activate("demo")
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, first, second)

	activated := session.Activated()
	require.Len(t, activated, 1)
	assert.Equal(t, "demo", activated[0].Skill.Name)
	assert.Equal(t, first, activated[0].Content)
}

func TestActivatedPreservesActivationOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, tmpDir, "alpha", "---\nname: alpha\ndescription: a\n---\nalpha body\n")
	writeSkill(t, tmpDir, "zeta", "---\nname: zeta\ndescription: z\n---\nzeta body\n")

	session := NewSession(discoverTestSkills(t, tmpDir))

	_, _, err := session.Activate("zeta")
	require.NoError(t, err)
	_, _, err = session.Activate("alpha")
	require.NoError(t, err)

	activated := session.Activated()
	require.Len(t, activated, 2)
	assert.Equal(t, "zeta", activated[0].Skill.Name)
	assert.Equal(t, "alpha", activated[1].Skill.Name)
}

func TestSessionsAreIndependent(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, tmpDir, "demo", "---\nname: demo\ndescription: d\n---\nbody\n")

	discovered := discoverTestSkills(t, tmpDir)
	first := NewSession(discovered)
	second := NewSession(discovered)

	_, _, err := first.Activate("demo")
	require.NoError(t, err)

	assert.True(t, first.IsActive("demo"))
	assert.False(t, second.IsActive("demo"))
}

func TestLoadResource(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := writeSkill(t, tmpDir, "demo", "---\nname: demo\ndescription: d\n---\nbody\n")

	require.NoError(t, os.MkdirAll(filepath.Join(skillDir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "scripts", "run.sh"), []byte("echo hi\n"), 0o644))

	session := NewSession(discoverTestSkills(t, tmpDir))

	content, err := session.LoadResource("demo", "scripts/run.sh")
	require.NoError(t, err)
	assert.Equal(t, "echo hi\n", content)
}

func TestLoadResourceErrors(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := writeSkill(t, tmpDir, "demo", "---\nname: demo\ndescription: d\n---\nbody\n")

	// a real file outside the skill dir, to prove traversal is rejected
	// even when the target exists
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "secret.txt"), []byte("s"), 0o644))

	session := NewSession(discoverTestSkills(t, tmpDir))

	t.Run("unknown skill", func(t *testing.T) {
		_, err := session.LoadResource("missing", "anything.md")
		assert.True(t, errors.Is(err, ErrSkillNotFound))
	})

	t.Run("missing resource", func(t *testing.T) {
		_, err := session.LoadResource("demo", "nope.md")
		assert.True(t, errors.Is(err, ErrResourceNotFound))
	})

	t.Run("traversal rejected", func(t *testing.T) {
		_, err := session.LoadResource("demo", "../secret.txt")
		assert.True(t, errors.Is(err, ErrPathEscape))
	})

	t.Run("absolute path outside rejected", func(t *testing.T) {
		_, err := session.LoadResource("demo", filepath.Join(tmpDir, "secret.txt"))
		assert.True(t, errors.Is(err, ErrPathEscape))
	})

	t.Run("absolute path inside allowed", func(t *testing.T) {
		_, err := session.LoadResource("demo", filepath.Join(skillDir, "SKILL.md"))
		assert.NoError(t, err)
	})

	t.Run("directory is not a resource", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(skillDir, "refs"), 0o755))
		_, err := session.LoadResource("demo", "refs")
		assert.Error(t, err)
	})
}
