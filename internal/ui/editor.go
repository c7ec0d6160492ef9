package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/config"
)

// OpenEditorMsg asks the app to compose a message to Recipient in the
// external editor, starting from InitialContent
type OpenEditorMsg struct {
	Recipient      string
	InitialContent string
}

// EditorResultMsg is sent when the external editor completes
type EditorResultMsg struct {
	Content string
	Err     error
}

// EditorCancelledMsg is sent when the editor leaves no message behind
type EditorCancelledMsg struct{}

// commentPrefix marks compose file lines that are not part of the message
const commentPrefix = "#"

// composeFile is the temp file handed to the editor
type composeFile struct {
	path string
}

func newComposeFile(recipient, draft string) (*composeFile, error) {
	f, err := os.CreateTemp("", config.AppName+"-compose-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create compose file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString(draft)
	if draft != "" && !strings.HasSuffix(draft, "\n") {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s Message to %s. Lines starting with %q are ignored;\n", commentPrefix, recipient, commentPrefix)
	fmt.Fprintf(&b, "%s an empty message cancels.\n", commentPrefix)

	if _, err := f.WriteString(b.String()); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write compose file: %w", err)
	}
	return &composeFile{path: f.Name()}, nil
}

// read returns the message with comment lines dropped
func (c *composeFile) read() (string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", fmt.Errorf("read compose file: %w", err)
	}
	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), nil
}

func (c *composeFile) remove() {
	os.Remove(c.path)
}

// editorCommand builds the editor invocation for path. The editor setting
// may carry its own flags, e.g. "code --wait".
func editorCommand(cfg *config.Config, path string) *exec.Cmd {
	editor := cfg.Editor
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if strings.TrimSpace(editor) != "" {
			break
		}
		editor = os.Getenv(env)
	}
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fields = []string{"nvim"}
	}

	args := make([]string, 0, len(fields)+len(cfg.EditorArgs))
	args = append(args, fields[1:]...)
	args = append(args, cfg.EditorArgs...)
	args = append(args, path)
	return exec.Command(fields[0], args...)
}

// StartEditorCmd suspends the TUI, runs the editor and reports the message
func StartEditorCmd(cfg *config.Config, msg OpenEditorMsg) tea.Cmd {
	file, err := newComposeFile(msg.Recipient, msg.InitialContent)
	if err != nil {
		return func() tea.Msg {
			return EditorResultMsg{Err: err}
		}
	}

	cmd := editorCommand(cfg, file.path)
	log.Debug().Strs("argv", cmd.Args).Msg("editor: starting")

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer file.remove()

		if err != nil {
			return EditorResultMsg{Err: fmt.Errorf("editor failed: %w", err)}
		}
		content, err := file.read()
		if err != nil {
			return EditorResultMsg{Err: err}
		}
		if content == "" {
			return EditorCancelledMsg{}
		}
		return EditorResultMsg{Content: content}
	})
}
