package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileTool(t *testing.T) {
	tool := &ReadFileTool{}
	state := newTestState(t)

	require.NoError(t, os.WriteFile(filepath.Join(state.WorkingDir(), "hello.txt"), []byte("hello world\n"), 0o644))

	t.Run("reads file", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "hello.txt"}`)
		require.False(t, result.IsError(), result.GetError())
		assert.Equal(t, "hello world\n", result.GetResult())
		assert.Contains(t, result.AssistantFacing(), "hello world")
	})

	t.Run("missing file", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "nope.txt"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "file not found")
	})

	t.Run("directory is not a file", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(state.WorkingDir(), "sub"), 0o755))
		result := tool.Execute(context.Background(), state, `{"path": "sub"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "is a directory")
	})

	t.Run("escape rejected", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "../secret.txt"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "escapes the working directory")
	})

	t.Run("validate rejects empty path", func(t *testing.T) {
		assert.Error(t, tool.ValidateInput(state, `{}`))
		assert.Error(t, tool.ValidateInput(state, `not json`))
		assert.NoError(t, tool.ValidateInput(state, `{"path": "a.txt"}`))
	})
}

func TestWriteFileTool(t *testing.T) {
	tool := &WriteFileTool{}
	state := newTestState(t)

	t.Run("writes file", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "out.txt", "content": "data"}`)
		require.False(t, result.IsError(), result.GetError())
		assert.Contains(t, result.GetResult(), "out.txt has been written successfully")

		content, err := os.ReadFile(filepath.Join(state.WorkingDir(), "out.txt"))
		require.NoError(t, err)
		assert.Equal(t, "data", string(content))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "deep/nested/out.txt", "content": "x"}`)
		require.False(t, result.IsError(), result.GetError())

		content, err := os.ReadFile(filepath.Join(state.WorkingDir(), "deep", "nested", "out.txt"))
		require.NoError(t, err)
		assert.Equal(t, "x", string(content))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		_ = tool.Execute(context.Background(), state, `{"path": "over.txt", "content": "first"}`)
		result := tool.Execute(context.Background(), state, `{"path": "over.txt", "content": "second"}`)
		require.False(t, result.IsError())

		content, err := os.ReadFile(filepath.Join(state.WorkingDir(), "over.txt"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(content))
	})

	t.Run("escape rejected", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "../evil.txt", "content": "x"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "escapes the working directory")
		assert.NoFileExists(t, filepath.Join(filepath.Dir(state.WorkingDir()), "evil.txt"))
	})

	t.Run("empty content is allowed", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "empty.txt", "content": ""}`)
		require.False(t, result.IsError())
		assert.FileExists(t, filepath.Join(state.WorkingDir(), "empty.txt"))
	})
}

func TestListFilesTool(t *testing.T) {
	tool := &ListFilesTool{}
	state := newTestState(t)

	require.NoError(t, os.WriteFile(filepath.Join(state.WorkingDir(), "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(state.WorkingDir(), "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(state.WorkingDir(), "docs"), 0o755))

	t.Run("sorted with dir suffix", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "."}`)
		require.False(t, result.IsError(), result.GetError())
		assert.Equal(t, "a.txt\nb.txt\ndocs/", result.GetResult())
	})

	t.Run("defaults to working directory", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{}`)
		require.False(t, result.IsError())
		assert.Contains(t, result.GetResult(), "a.txt")
	})

	t.Run("empty directory", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(state.WorkingDir(), "empty"), 0o755))
		result := tool.Execute(context.Background(), state, `{"path": "empty"}`)
		require.False(t, result.IsError())
		assert.Contains(t, result.GetResult(), "is empty")
	})

	t.Run("missing directory", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "nope"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "directory not found")
	})

	t.Run("file is not a directory", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "a.txt"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "not a directory")
	})

	t.Run("escape rejected", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": ".."}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "escapes the working directory")
	})
}

func TestCreateDirectoryTool(t *testing.T) {
	tool := &CreateDirectoryTool{}
	state := newTestState(t)

	t.Run("creates nested directories", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "a/b/c"}`)
		require.False(t, result.IsError(), result.GetError())
		assert.DirExists(t, filepath.Join(state.WorkingDir(), "a", "b", "c"))
	})

	t.Run("existing directory succeeds", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "a/b/c"}`)
		require.False(t, result.IsError())
	})

	t.Run("file in the way", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(state.WorkingDir(), "occupied"), []byte("x"), 0o644))
		result := tool.Execute(context.Background(), state, `{"path": "occupied"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "not a directory")
	})

	t.Run("escape rejected", func(t *testing.T) {
		result := tool.Execute(context.Background(), state, `{"path": "../outside"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.GetError(), "escapes the working directory")
	})
}

// Round trip through write, list and read, the way the agent composes
// file tools during a task.
func TestFileToolsRoundTrip(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()

	result := RunTool(ctx, state, "create_directory", `{"path": "project"}`)
	require.False(t, result.IsError(), result.GetError())

	result = RunTool(ctx, state, "write_file", `{"path": "project/readme.md", "content": "# Project\n"}`)
	require.False(t, result.IsError(), result.GetError())

	result = RunTool(ctx, state, "list_files", `{"path": "project"}`)
	require.False(t, result.IsError(), result.GetError())
	assert.Equal(t, "readme.md", result.GetResult())

	result = RunTool(ctx, state, "read_file", `{"path": "project/readme.md"}`)
	require.False(t, result.IsError(), result.GetError())
	assert.Equal(t, "# Project\n", result.GetResult())
}
