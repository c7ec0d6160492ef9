package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// ContactsKeyMap defines the key bindings for the contacts section
type ContactsKeyMap struct {
	ListKeyMap
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
}

// DefaultContactsKeyMap returns the default key bindings
func DefaultContactsKeyMap() ContactsKeyMap {
	return ContactsKeyMap{
		ListKeyMap: DefaultListKeyMap(),
		Add: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "new contact"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
	}
}

const (
	fieldName = iota
	fieldUsername
	fieldPhone
	fieldAvatar
	fieldCount
)

var contactFieldLabels = [fieldCount]string{"Name", "Username", "Phone", "Avatar"}

// ContactsModel is the Contacts section: a searchable list with an
// add/edit form
type ContactsModel struct {
	deps   deps
	book   *messenger.ContactBook
	cursor listCursor
	search searchBox
	keyMap ContactsKeyMap

	fields   [fieldCount]textinput.Model
	focus    int
	formErr  string
	statusOK string

	width  int
	height int
}

// NewContactsModel creates an empty Contacts section
func NewContactsModel(d deps, _ mount) *ContactsModel {
	m := &ContactsModel{
		deps:   d,
		book:   messenger.NewContactBook(),
		keyMap: DefaultContactsKeyMap(),
	}
	for i := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Placeholder = contactFieldLabels[i]
		m.fields[i] = ti
	}
	m.fields[fieldUsername].Placeholder = "username (optional)"
	m.fields[fieldPhone].Placeholder = "+7 999 123-45-67"
	return m
}

// Book returns the contact book
func (m *ContactsModel) Book() *messenger.ContactBook {
	return m.book
}

// Init initializes the section
func (m *ContactsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the section
func (m *ContactsModel) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.book.FormOpen() {
			var cmd tea.Cmd
			m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
			return cmd
		}
		return nil
	}

	if m.book.FormOpen() {
		return m.updateForm(km)
	}

	if m.search.active {
		if m.search.handle(km) {
			m.book.SetQuery(m.search.query)
			m.cursor.reset()
		}
		return nil
	}

	contacts := m.book.Filtered()
	if m.cursor.move(km, m.keyMap.ListKeyMap, len(contacts), m.visibleItemCount()) {
		return nil
	}

	m.statusOK = ""
	switch {
	case key.Matches(km, m.keyMap.Search):
		m.search.active = true
	case key.Matches(km, m.keyMap.Add):
		m.book.OpenAdd()
		return m.loadForm()
	case key.Matches(km, m.keyMap.Edit):
		if c := m.SelectedContact(); c != nil {
			if err := m.book.OpenEdit(c.ID); err == nil {
				return m.loadForm()
			}
		}
	case key.Matches(km, m.keyMap.Delete):
		if c := m.SelectedContact(); c != nil {
			m.book.Delete(c.ID)
			m.statusOK = "Contact deleted"
			m.cursor.clamp(len(m.book.Filtered()), m.visibleItemCount())
		}
	case key.Matches(km, m.keyMap.Back):
		m.search.query = ""
		m.book.SetQuery("")
		m.cursor.reset()
	}
	return nil
}

func (m *ContactsModel) updateForm(km tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(km, m.keyMap.Back):
		m.book.CloseForm()
		m.formErr = ""
		return nil

	case key.Matches(km, m.keyMap.Save):
		m.book.SetForm(m.formValues())
		editing := m.book.Editing() != ""
		if _, err := m.book.Save(); err != nil {
			if errors.Is(err, messenger.ErrContactInvalid) {
				m.formErr = "Name and phone are required"
			} else {
				m.formErr = err.Error()
			}
			return nil
		}
		m.formErr = ""
		m.statusOK = "Contact added"
		if editing {
			m.statusOK = "Contact updated"
		}
		m.cursor.clamp(len(m.book.Filtered()), m.visibleItemCount())
		return nil

	case key.Matches(km, m.keyMap.Next):
		return m.focusField((m.focus + 1) % fieldCount)

	case key.Matches(km, m.keyMap.Prev):
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(km)
	return cmd
}

func (m *ContactsModel) loadForm() tea.Cmd {
	form := m.book.Form()
	m.fields[fieldName].SetValue(form.Name)
	m.fields[fieldUsername].SetValue(form.Username)
	m.fields[fieldPhone].SetValue(form.Phone)
	m.fields[fieldAvatar].SetValue(form.Avatar)
	m.formErr = ""
	return m.focusField(fieldName)
}

func (m *ContactsModel) focusField(i int) tea.Cmd {
	for j := range m.fields {
		m.fields[j].Blur()
	}
	m.focus = i
	return m.fields[i].Focus()
}

func (m *ContactsModel) formValues() messenger.ContactForm {
	return messenger.ContactForm{
		Name:     strings.TrimSpace(m.fields[fieldName].Value()),
		Username: strings.TrimPrefix(strings.TrimSpace(m.fields[fieldUsername].Value()), "@"),
		Phone:    strings.TrimSpace(m.fields[fieldPhone].Value()),
		Avatar:   strings.TrimSpace(m.fields[fieldAvatar].Value()),
	}
}

// SelectedContact returns the highlighted contact of the filtered list
func (m *ContactsModel) SelectedContact() *store.Contact {
	contacts := m.book.Filtered()
	if m.cursor.selected >= 0 && m.cursor.selected < len(contacts) {
		c := contacts[m.cursor.selected]
		return &c
	}
	return nil
}

// Capturing reports whether keys are going into a text field
func (m *ContactsModel) Capturing() bool {
	return m.book.FormOpen() || m.search.active
}

// Help returns the key help for the current state
func (m *ContactsModel) Help() string {
	switch {
	case m.book.FormOpen():
		return "tab: next field | Enter: save | Esc: cancel"
	case m.search.active:
		return "type to filter | Enter: keep | Esc: clear"
	default:
		return "↑/k ↓/j: navigate | n: new | e: edit | d: delete | /: search"
	}
}

// SetSize sets the section dimensions
func (m *ContactsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.fields {
		m.fields[i].Width = min(40, max(width-20, 10))
	}
}

func (m *ContactsModel) visibleItemCount() int {
	return (m.height - 7) / 2
}

// View renders the list or the form dialog
func (m *ContactsModel) View() string {
	st := m.deps.styles
	if m.book.FormOpen() {
		return st.PanelActive.Width(m.width).Height(m.height-2).Render(
			lipgloss.Place(m.width-4, m.height-2, lipgloss.Center, lipgloss.Center, m.renderForm()),
		)
	}

	var b strings.Builder
	b.WriteString(st.PanelTitleText.Render("Contacts"))
	b.WriteString("  " + st.Subtle.Render("n: add contact"))
	b.WriteString("\n")
	if m.statusOK != "" {
		b.WriteString(st.Success.Render(m.statusOK))
	}
	b.WriteString("\n")

	availableHeight := m.height - 6
	contacts := m.book.Filtered()
	linesUsed := 0
	if len(contacts) == 0 {
		b.WriteString("\n" + st.ItemPreview.Render(m.book.EmptyText()) + "\n")
		linesUsed += 2
	}
	for i := m.cursor.offset; i < len(contacts); i++ {
		item := m.renderContact(contacts[i], i == m.cursor.selected)
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
	b.WriteString(m.search.view(st, m.width-4, len(contacts)))

	return st.PanelActive.Width(m.width).Height(m.height - 2).Render(b.String())
}

func (m *ContactsModel) renderContact(c store.Contact, selected bool) string {
	st := m.deps.styles

	indicator := "  "
	if selected {
		indicator = "> "
	}
	first := indicator + c.Avatar + " " + st.ItemName.Render(Truncate(c.Name, m.width-12))
	detail := c.Phone
	if c.Username != "" {
		detail = "@" + c.Username + " · " + c.Phone
	}
	second := "    " + st.ItemPreview.Render(Truncate(detail, m.width-10))

	itemStyle := st.ListItem
	if selected {
		itemStyle = st.ListItemSelected
	}
	return itemStyle.Width(m.width - 2).Render(first + "\n" + second)
}

func (m *ContactsModel) renderForm() string {
	st := m.deps.styles

	title := "New contact"
	if m.book.Editing() != "" {
		title = "Edit contact"
	}

	var b strings.Builder
	b.WriteString(st.DialogTitle.Render(title))
	b.WriteString("\n")
	for i := range m.fields {
		label := contactFieldLabels[i]
		if i == fieldName || i == fieldPhone {
			label += " *"
		}
		b.WriteString(st.InputLabel.Render(label))
		b.WriteString("\n")
		style := st.Input
		if i == m.focus {
			style = st.InputFocused
		}
		b.WriteString(style.Render(m.fields[i].View()))
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(st.Error.Render(m.formErr))
		b.WriteString("\n")
	}

	save := st.ButtonMuted.Render("Save")
	if messenger.CanSaveContact(m.formValues()) {
		save = st.DialogButton.Render("Save")
	}
	b.WriteString(save + "  " + st.Subtle.Render("Esc to cancel"))

	return st.Dialog.Render(b.String())
}
