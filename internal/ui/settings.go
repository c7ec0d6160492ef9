package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/n0ko/wix-tui/internal/messenger"
)

// SettingsKeyMap defines the key bindings for the settings section
type SettingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

// DefaultSettingsKeyMap returns the default key bindings
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
	}
}

// SettingsModel is the Settings section. Switches are visual only.
type SettingsModel struct {
	deps     deps
	settings *messenger.Settings
	keyMap   SettingsKeyMap
	selected int

	width  int
	height int
}

// NewSettingsModel creates the Settings section with every switch on
func NewSettingsModel(d deps, _ mount) *SettingsModel {
	return &SettingsModel{
		deps:     d,
		settings: messenger.NewSettings(),
		keyMap:   DefaultSettingsKeyMap(),
	}
}

// Settings returns the switch state
func (m *SettingsModel) Settings() *messenger.Settings {
	return m.settings
}

// Init initializes the section
func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the section
func (m *SettingsModel) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	toggles := m.settings.Toggles()
	switch {
	case key.Matches(km, m.keyMap.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(km, m.keyMap.Down):
		if m.selected < len(toggles)-1 {
			m.selected++
		}
	case key.Matches(km, m.keyMap.Toggle):
		if m.selected < len(toggles) {
			m.settings.Flip(toggles[m.selected].ID)
		}
	}
	return nil
}

// Capturing reports whether keys are going into a text field
func (m *SettingsModel) Capturing() bool {
	return false
}

// Help returns the key help
func (m *SettingsModel) Help() string {
	return "↑/k ↓/j: navigate | space: toggle"
}

// SetSize sets the section dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the settings groups
func (m *SettingsModel) View() string {
	st := m.deps.styles

	var b strings.Builder
	b.WriteString(st.PanelTitleText.Render("Settings"))
	b.WriteString("\n")

	idx := 0
	for _, g := range m.settings.Groups() {
		b.WriteString("\n")
		b.WriteString(st.InputLabel.Render(strings.ToUpper(g.Title)))
		b.WriteString("\n")
		for _, t := range g.Toggles {
			indicator := "  "
			if idx == m.selected {
				indicator = "> "
			}
			sw := st.ToggleOff.Render("[ ]")
			if t.On {
				sw = st.ToggleOn.Render("[●]")
			}
			label := t.Label
			if t.Locked {
				label += st.Subtle.Render(" (locked)")
			}
			line := indicator + sw + " " + label
			if idx == m.selected {
				line = st.ListItemSelected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			idx++
		}
		if g.Note != "" {
			b.WriteString("    " + st.Subtle.Render(g.Note) + "\n")
		}
		for _, e := range g.Entries {
			b.WriteString("    " + st.ItemPreview.Render(e+"  ›") + "\n")
		}
	}

	return st.PanelActive.Width(m.width).Height(m.height - 2).Render(b.String())
}
