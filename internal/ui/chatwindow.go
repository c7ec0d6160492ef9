package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// ChatWindowKeyMap defines the key bindings for the chat window
type ChatWindowKeyMap struct {
	PageUp   key.Binding
	PageDown key.Binding
	Voice    key.Binding
	Music    key.Binding
	Location key.Binding
}

// DefaultChatWindowKeyMap returns the default key bindings
func DefaultChatWindowKeyMap() ChatWindowKeyMap {
	return ChatWindowKeyMap{
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Voice: key.NewBinding(
			key.WithKeys("alt+v"),
			key.WithHelp("alt+v", "voice"),
		),
		Music: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "music"),
		),
		Location: key.NewBinding(
			key.WithKeys("alt+l"),
			key.WithHelp("alt+l", "location"),
		),
	}
}

// ChatWindowModel shows one chat thread and its compose input. The thread
// is discarded with the window.
type ChatWindowModel struct {
	deps   deps
	thread *messenger.Thread
	input  InputModel
	keyMap ChatWindowKeyMap
	offset int // lines scrolled up from the bottom

	width  int
	height int
}

// NewChatWindowModel creates a window for thread
func NewChatWindowModel(d deps, thread *messenger.Thread) *ChatWindowModel {
	recipient := thread.Chat().Name
	if recipient == "" {
		recipient = "Unknown"
	}
	return &ChatWindowModel{
		deps:   d,
		thread: thread,
		input:  NewInputModel(d.styles, "Write a message...", recipient),
		keyMap: DefaultChatWindowKeyMap(),
	}
}

// Focus focuses the compose input
func (m *ChatWindowModel) Focus() tea.Cmd {
	return m.input.SetFocused(true)
}

// Thread returns the open thread
func (m *ChatWindowModel) Thread() *messenger.Thread {
	return m.thread
}

// Update handles messages for the window
func (m *ChatWindowModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmitMsg:
		m.send(store.KindText, msg.Content)
		return nil

	case EditorResultMsg:
		if msg.Err == nil {
			m.input.SetValue(msg.Content)
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Voice):
			m.send(store.KindVoice, "")
			return nil
		case key.Matches(msg, m.keyMap.Music):
			m.send(store.KindMusic, "")
			return nil
		case key.Matches(msg, m.keyMap.Location):
			m.send(store.KindLocation, "")
			return nil
		case key.Matches(msg, m.keyMap.PageUp):
			m.offset += max(m.height/2, 1)
			return nil
		case key.Matches(msg, m.keyMap.PageDown):
			m.offset = max(m.offset-max(m.height/2, 1), 0)
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *ChatWindowModel) send(kind store.MessageKind, text string) {
	if _, ok := m.thread.Send(kind, text); ok {
		// New messages scroll to the bottom
		m.offset = 0
	}
}

// Help returns the window key help
func (m *ChatWindowModel) Help() string {
	return "Enter: send | ctrl+e: editor | ctrl+u: clear | alt+v: voice | alt+m: music | alt+l: location"
}

// SetSize sets the window dimensions
func (m *ChatWindowModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width)
}

// View renders the header, the thread and the compose input
func (m *ChatWindowModel) View() string {
	st := m.deps.styles
	chat := m.thread.Chat()

	header := st.ItemName.Render(strings.TrimSpace(chat.Avatar+" "+chat.Name)) + "\n" + st.Online.Render("online")

	inputView := m.input.View()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(inputView) - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	msgs := m.thread.Messages()
	if len(msgs) == 0 {
		body = lipgloss.Place(m.width-4, bodyHeight, lipgloss.Center, lipgloss.Center,
			st.ItemPreview.Render("Start the conversation"))
	} else {
		var lines []string
		for _, msg := range msgs {
			lines = append(lines, strings.Split(m.renderMessage(msg, chat), "\n")...)
		}
		end := len(lines) - min(m.offset, max(len(lines)-bodyHeight, 0))
		start := max(end-bodyHeight, 0)
		body = strings.Join(lines[start:end], "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		st.Subtle.Render(strings.Repeat("─", max(m.width-4, 0))),
		lipgloss.NewStyle().Height(bodyHeight).Render(body),
		inputView,
	)
	return st.PanelActive.Width(m.width).Height(m.height).Render(content)
}

// renderMessage renders a single message bubble
func (m *ChatWindowModel) renderMessage(msg store.Message, chat store.Chat) string {
	st := m.deps.styles
	maxWidth := m.width - 6

	msgStyle := st.MessageReceived
	fromMe := msg.Sender == store.SenderSelf
	if fromMe {
		msgStyle = st.MessageSent
	}

	content := wrapText(messenger.Body(msg), maxWidth*2/3)
	rendered := msgStyle.Render(content + "\n" + st.MessageTime.Render(msg.Time))

	if !fromMe && chat.Avatar != "" {
		rendered = lipgloss.JoinHorizontal(lipgloss.Top, chat.Avatar+" ", rendered)
	}

	if fromMe {
		// Right-align sent messages
		padding := maxWidth - lipgloss.Width(rendered)
		if padding > 0 {
			rendered = lipgloss.NewStyle().PaddingLeft(padding).Render(rendered)
		}
	}
	return rendered
}

// wrapText wraps text to width display cells. Words wider than a line are
// split across lines.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}

		col := 0
		for _, word := range strings.Fields(line) {
			for _, part := range splitWord(word, width) {
				w := runewidth.StringWidth(part)
				switch {
				case col == 0:
				case col+1+w > width:
					result.WriteString("\n")
					col = 0
				default:
					result.WriteString(" ")
					col++
				}
				result.WriteString(part)
				col += w
			}
		}
	}
	return result.String()
}

// splitWord cuts word into chunks no wider than width
func splitWord(word string, width int) []string {
	if runewidth.StringWidth(word) <= width {
		return []string{word}
	}
	var parts []string
	var cur strings.Builder
	curWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if curWidth+rw > width && curWidth > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += rw
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
