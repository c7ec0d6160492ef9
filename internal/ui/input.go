package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputKeyMap defines the key bindings for the compose input
type InputKeyMap struct {
	Send   key.Binding
	Editor key.Binding
	Clear  key.Binding
}

// DefaultInputKeyMap returns the default key bindings
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "editor"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
	}
}

// SubmitMsg is emitted when the user submits the compose input
type SubmitMsg struct {
	Content string
}

// InputModel is a single-line compose box. Multi-line drafts come back
// from the external editor and are kept whole until sent or cleared.
type InputModel struct {
	textInput    textinput.Model
	draftContent string
	width        int
	focused      bool
	styles       *Styles
	keyMap       InputKeyMap
	recipient    string
}

// NewInputModel creates a compose input. With a recipient, ctrl+e hands the
// draft to the external editor.
func NewInputModel(styles *Styles, placeholder, recipient string) InputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 5000
	ti.Width = 50

	return InputModel{
		textInput: ti,
		styles:    styles,
		keyMap:    DefaultInputKeyMap(),
		recipient: recipient,
	}
}

// Update handles messages for the input component
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keyMap.Send):
			content := m.Content()
			if strings.TrimSpace(content) == "" {
				return m, nil
			}
			m.Reset()
			return m, func() tea.Msg {
				return SubmitMsg{Content: content}
			}

		case m.recipient != "" && key.Matches(msg, m.keyMap.Editor):
			req := OpenEditorMsg{Recipient: m.recipient, InitialContent: m.Content()}
			return m, func() tea.Msg {
				return req
			}

		case m.draftContent != "" && key.Matches(msg, m.keyMap.Clear):
			m.Reset()
			return m, nil

		case m.draftContent != "":
			// The preview is read-only while an editor draft is held
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the input component
func (m InputModel) View() string {
	style := m.styles.Input
	if m.focused {
		style = m.styles.InputFocused
	}

	m.textInput.PromptStyle = m.styles.InputPrompt
	m.textInput.TextStyle = m.styles.ItemName
	m.textInput.PlaceholderStyle = m.styles.InputPlaceholder

	return style.Width(m.width).Render(m.textInput.View())
}

// SetWidth sets the input width
func (m *InputModel) SetWidth(width int) {
	m.width = width
	m.textInput.Width = width - 6
}

// SetFocused sets the focus state
func (m *InputModel) SetFocused(focused bool) tea.Cmd {
	m.focused = focused
	if focused {
		return m.textInput.Focus()
	}
	m.textInput.Blur()
	return nil
}

// Content returns the full draft, including multi-line editor content
func (m InputModel) Content() string {
	if m.draftContent != "" {
		return m.draftContent
	}
	return m.textInput.Value()
}

// Value returns what is shown in the input
func (m InputModel) Value() string {
	return m.textInput.Value()
}

// SetValue sets the draft, showing a one-line preview of multi-line content
func (m *InputModel) SetValue(value string) {
	if !strings.Contains(value, "\n") {
		m.draftContent = ""
		m.textInput.SetValue(value)
		return
	}
	m.draftContent = value
	lines := strings.Split(value, "\n")
	m.textInput.SetValue(fmt.Sprintf("%s [+%d lines]", Truncate(lines[0], 30), len(lines)-1))
}

// Reset clears the input
func (m *InputModel) Reset() {
	m.textInput.Reset()
	m.draftContent = ""
}
