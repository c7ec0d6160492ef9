package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// gotReplyMsg is delivered by the scheduled reply task
type gotReplyMsg struct {
	owned
}

// AssistantModel is the Got section. Each user message schedules one
// reply task bound to the section's mount.
type AssistantModel struct {
	deps      deps
	mount     mount
	assistant *messenger.Assistant
	input     InputModel
	pending   int

	width  int
	height int
}

// NewAssistantModel creates the Got section holding the greeting
func NewAssistantModel(d deps, m mount) *AssistantModel {
	input := NewInputModel(d.styles, "Ask Got anything...", "")
	return &AssistantModel{
		deps:      d,
		mount:     m,
		assistant: messenger.NewAssistant(d.clock),
		input:     input,
	}
}

// Init focuses the input
func (m *AssistantModel) Init() tea.Cmd {
	return m.input.SetFocused(true)
}

// Transcript returns the messages shown
func (m *AssistantModel) Transcript() []store.AssistantMessage {
	return m.assistant.Messages()
}

// Pending returns the number of scheduled replies
func (m *AssistantModel) Pending() int {
	return m.pending
}

// Update handles messages for the section
func (m *AssistantModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmitMsg:
		if _, ok := m.assistant.Send(msg.Content); !ok {
			return nil
		}
		m.pending++
		return After(m.mount.ctx, m.deps.cfg.Assistant.ReplyDelay, func() tea.Msg {
			return gotReplyMsg{owned: m.mount.tag()}
		})

	case gotReplyMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.assistant.Reply()
		log.Debug().Int("pending", m.pending).Msg("got: reply delivered")
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// Capturing reports whether keys are going into a text field
func (m *AssistantModel) Capturing() bool {
	return true
}

// Help returns the key help
func (m *AssistantModel) Help() string {
	return "Enter: send"
}

// SetSize sets the section dimensions
func (m *AssistantModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 2)
}

// View renders the transcript and the input
func (m *AssistantModel) View() string {
	st := m.deps.styles

	header := st.ItemName.Render("🤖 Got AI") + "\n" + st.Online.Render("Always online")
	inputView := m.input.View()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(inputView)-4, 1)

	var lines []string
	maxWidth := m.width - 6
	for _, msg := range m.assistant.Messages() {
		style := st.MessageReceived
		if msg.Sender == store.AssistantSenderUser {
			style = st.MessageSent
		}
		bubble := style.Render(wrapText(msg.Text, maxWidth*2/3) + "\n" + st.MessageTime.Render(msg.Time))
		if msg.Sender == store.AssistantSenderUser {
			if pad := maxWidth - lipgloss.Width(bubble); pad > 0 {
				bubble = lipgloss.NewStyle().PaddingLeft(pad).Render(bubble)
			}
		} else {
			bubble = lipgloss.JoinHorizontal(lipgloss.Top, "🤖 ", bubble)
		}
		lines = append(lines, strings.Split(bubble, "\n")...)
	}
	if m.pending > 0 {
		lines = append(lines, st.Subtle.Render("Got is typing..."))
	}
	if len(lines) > bodyHeight {
		lines = lines[len(lines)-bodyHeight:]
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		st.Subtle.Render(strings.Repeat("─", max(m.width-4, 0))),
		lipgloss.NewStyle().Height(bodyHeight).Render(strings.Join(lines, "\n")),
		inputView,
	)
	return st.PanelActive.Width(m.width).Height(m.height - 2).Render(content)
}
