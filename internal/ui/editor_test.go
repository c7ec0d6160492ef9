package ui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/config"
)

func TestComposeFile_DropsCommentLines(t *testing.T) {
	file, err := newComposeFile("Anna", "draft")
	require.NoError(t, err)
	t.Cleanup(file.remove)

	raw, err := os.ReadFile(file.path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# Message to Anna.")

	content, err := file.read()
	require.NoError(t, err)
	assert.Equal(t, "draft", content)
}

func TestComposeFile_KeepsMultilineBody(t *testing.T) {
	file, err := newComposeFile("Bob", "")
	require.NoError(t, err)
	t.Cleanup(file.remove)

	require.NoError(t, os.WriteFile(file.path, []byte("line one\n  # note\nline two\n# Message to Bob.\n"), 0o600))

	content, err := file.read()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", content)
}

func TestComposeFile_OnlyCommentsIsEmpty(t *testing.T) {
	file, err := newComposeFile("Bob", "")
	require.NoError(t, err)
	t.Cleanup(file.remove)

	content, err := file.read()
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestComposeFile_RemoveDeletesFile(t *testing.T) {
	file, err := newComposeFile("Bob", "")
	require.NoError(t, err)

	file.remove()
	_, err = os.Stat(file.path)
	assert.True(t, os.IsNotExist(err))
}

func TestEditorCommand_SplitsEditorFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor = "code --wait"
	cfg.EditorArgs = []string{"-n"}

	cmd := editorCommand(cfg, "/tmp/x.txt")
	assert.Equal(t, []string{"code", "--wait", "-n", "/tmp/x.txt"}, cmd.Args)
	assert.Equal(t, []string{"-n"}, cfg.EditorArgs)
}

func TestEditorCommand_FallsBackToEnvironment(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "vi")
	cfg := config.DefaultConfig()
	cfg.Editor = ""

	cmd := editorCommand(cfg, "/tmp/x.txt")
	assert.Equal(t, []string{"vi", "/tmp/x.txt"}, cmd.Args)

	t.Setenv("EDITOR", "")
	cmd = editorCommand(cfg, "/tmp/x.txt")
	assert.Equal(t, []string{"nvim", "/tmp/x.txt"}, cmd.Args)
}
