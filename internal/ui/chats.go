package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// ListKeyMap defines the key bindings for list sections
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding
	Search key.Binding
	Back   key.Binding
}

// DefaultListKeyMap returns the default key bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("gg/home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// listCursor tracks the selection and scroll offset of a list
type listCursor struct {
	selected    int
	offset      int
	lastKeyWasG bool
}

// move handles navigation keys; handled reports whether msg was one
func (c *listCursor) move(msg tea.KeyMsg, km ListKeyMap, count, visible int) bool {
	// gg goes to the top
	if msg.String() == "g" {
		if c.lastKeyWasG {
			c.selected, c.offset = 0, 0
			c.lastKeyWasG = false
		} else {
			c.lastKeyWasG = true
		}
		return true
	}
	c.lastKeyWasG = false

	switch {
	case key.Matches(msg, km.Up):
		if c.selected > 0 {
			c.selected--
		}
	case key.Matches(msg, km.Down):
		if c.selected < count-1 {
			c.selected++
		}
	case key.Matches(msg, km.Top):
		c.selected = 0
	case key.Matches(msg, km.Bottom):
		c.selected = max(0, count-1)
	default:
		return false
	}
	c.clamp(count, visible)
	return true
}

func (c *listCursor) clamp(count, visible int) {
	if count == 0 {
		c.selected, c.offset = 0, 0
		return
	}
	c.selected = min(max(c.selected, 0), count-1)
	if visible < 1 {
		visible = 1
	}
	if c.selected < c.offset {
		c.offset = c.selected
	}
	if c.selected >= c.offset+visible {
		c.offset = c.selected - visible + 1
	}
}

func (c *listCursor) reset() {
	c.selected, c.offset = 0, 0
}

// ChatsModel is the Chats section: a searchable chat list and the chat
// window of the selected chat
type ChatsModel struct {
	deps   deps
	mount  mount
	list   *messenger.ChatList
	cursor listCursor
	search searchBox
	keyMap ListKeyMap
	window *ChatWindowModel

	width  int
	height int
}

// NewChatsModel creates the Chats section seeded from the configured chats
func NewChatsModel(d deps, m mount) *ChatsModel {
	return &ChatsModel{
		deps:   d,
		mount:  m,
		list:   messenger.NewChatList(chatsFromConfig(d.cfg.Chats), d.clock),
		keyMap: DefaultListKeyMap(),
	}
}

// Init initializes the section
func (m *ChatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the section
func (m *ChatsModel) Update(msg tea.Msg) tea.Cmd {
	if m.window != nil {
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keyMap.Back) {
			m.closeWindow()
			return nil
		}
		return m.window.Update(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.search.active {
		if m.search.handle(km) {
			m.list.SetQuery(m.search.query)
			m.cursor.reset()
		}
		return nil
	}

	chats := m.list.Filtered()
	if m.cursor.move(km, m.keyMap, len(chats), m.visibleItemCount()) {
		return nil
	}

	switch {
	case key.Matches(km, m.keyMap.Search):
		m.search.active = true
	case key.Matches(km, m.keyMap.Select):
		if chat := m.SelectedChat(); chat != nil {
			return m.open(chat.ID)
		}
	case key.Matches(km, m.keyMap.Back):
		m.search.query = ""
		m.list.SetQuery("")
		m.cursor.reset()
	}
	return nil
}

func (m *ChatsModel) open(id string) tea.Cmd {
	thread, ok := m.list.Select(id)
	if !ok {
		return nil
	}
	m.window = NewChatWindowModel(m.deps, thread)
	m.window.SetSize(m.windowSize())
	return m.window.Focus()
}

func (m *ChatsModel) closeWindow() {
	m.list.ClearSelection()
	m.window = nil
}

// SelectedChat returns the highlighted chat of the filtered list
func (m *ChatsModel) SelectedChat() *store.Chat {
	chats := m.list.Filtered()
	if m.cursor.selected >= 0 && m.cursor.selected < len(chats) {
		c := chats[m.cursor.selected]
		return &c
	}
	return nil
}

// Window returns the open chat window, or nil
func (m *ChatsModel) Window() *ChatWindowModel {
	return m.window
}

// Capturing reports whether keys are going into a text field
func (m *ChatsModel) Capturing() bool {
	return m.search.active || m.window != nil
}

// Help returns the key help for the current state
func (m *ChatsModel) Help() string {
	switch {
	case m.window != nil:
		return m.window.Help() + " | Esc: close chat"
	case m.search.active:
		return "type to filter | Enter: keep | Esc: clear"
	default:
		return "↑/k ↓/j: navigate | Enter: open chat | /: search"
	}
}

// SetSize sets the section dimensions
func (m *ChatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.window != nil {
		m.window.SetSize(m.windowSize())
	}
}

func (m *ChatsModel) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m *ChatsModel) windowSize() (int, int) {
	return max(m.width-m.listWidth()-4, 20), m.height - 2
}

// visibleItemCount returns the number of items that can be displayed
func (m *ChatsModel) visibleItemCount() int {
	return (m.height - 6) / 2 // Each item takes 2 lines
}

// View renders the chat list and the chat window or its placeholder
func (m *ChatsModel) View() string {
	st := m.deps.styles
	listWidth := m.listWidth()

	var b strings.Builder
	b.WriteString(st.PanelTitleText.Render("Chats"))
	b.WriteString("\n")

	availableHeight := m.height - 5
	chats := m.list.Filtered()
	linesUsed := 0
	if len(chats) == 0 {
		empty := "No chats yet"
		if m.list.Len() > 0 {
			empty = "No chats found"
		}
		b.WriteString("\n" + st.ItemPreview.Render(empty) + "\n")
		linesUsed += 2
	}
	for i := m.cursor.offset; i < len(chats); i++ {
		item := m.renderChatItem(chats[i], i == m.cursor.selected, listWidth)
		itemLines := strings.Count(item, "\n") + 1
		if linesUsed+itemLines > availableHeight {
			break
		}
		b.WriteString(item)
		b.WriteString("\n")
		linesUsed += itemLines
	}
	for i := linesUsed; i < availableHeight; i++ {
		b.WriteString("\n")
	}
	b.WriteString(m.search.view(st, listWidth-4, len(chats)))

	listStyle := st.PanelActive
	if m.window != nil {
		listStyle = st.Panel
	}
	listView := listStyle.Width(listWidth).Height(m.height - 2).Render(b.String())

	var right string
	if m.window != nil {
		right = m.window.View()
	} else {
		w, h := m.windowSize()
		placeholder := lipgloss.JoinVertical(lipgloss.Center,
			st.PanelTitleText.Render("💬"),
			st.ItemPreview.Render("Select a chat to start messaging"),
		)
		right = st.Panel.Width(w).Height(h).Render(
			lipgloss.Place(w-2, h, lipgloss.Center, lipgloss.Center, placeholder),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, listView, right)
}

// renderChatItem renders a single chat item
func (m *ChatsModel) renderChatItem(chat store.Chat, selected bool, width int) string {
	st := m.deps.styles
	maxWidth := width - 6

	indicator := "  "
	if selected {
		indicator = "> "
	}

	name := chat.Name
	if name == "" {
		name = "Unknown"
	}
	if chat.Avatar != "" {
		name = chat.Avatar + " " + name
	}
	name = Truncate(name, maxWidth-len(chat.Time)-2)

	spacing := maxWidth - lipgloss.Width(name) - lipgloss.Width(chat.Time)
	if spacing < 1 {
		spacing = 1
	}
	firstLine := indicator + st.ItemName.Render(name) + strings.Repeat(" ", spacing) + st.ItemTime.Render(chat.Time)

	preview := strings.ReplaceAll(chat.LastMessage, "\n", " ")
	badge := ""
	if chat.Unread > 0 {
		badge = fmt.Sprintf("%d", chat.Unread)
		preview = Truncate(preview, maxWidth-len(badge)-3)
		badge = " " + st.ItemBadge.Render(badge)
	} else {
		preview = Truncate(preview, maxWidth-2)
	}
	secondLine := "  " + st.ItemPreview.Render(preview) + badge

	itemStyle := st.ListItem
	if selected {
		itemStyle = st.ListItemSelected
	}
	return itemStyle.Width(width - 2).Render(firstLine + "\n" + secondLine)
}
