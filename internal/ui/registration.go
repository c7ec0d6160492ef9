package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// RegistrationKeyMap defines the key bindings for the registration screen
type RegistrationKeyMap struct {
	Submit  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Upload  key.Binding
	Dismiss key.Binding
}

// DefaultRegistrationKeyMap returns the default key bindings
func DefaultRegistrationKeyMap() RegistrationKeyMap {
	return RegistrationKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev avatar"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next avatar"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u", "ctrl+o"),
			key.WithHelp("u", "upload photo"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// RegisteredMsg is emitted once registration has completed. Profile is
// what the user entered; User is the session the server returned.
type RegisteredMsg struct {
	User    *store.User
	Profile store.UserProfile
}

type registerResultMsg struct {
	user *store.User
	err  error
}

const (
	credPassword = iota
	credNickname
	credUsername
	credCount
)

// RegistrationModel is the four-stage registration screen
type RegistrationModel struct {
	deps   deps
	ctx    context.Context
	wizard *messenger.Wizard
	keyMap RegistrationKeyMap

	phone     textinput.Model
	code      textinput.Model
	creds     [credCount]textinput.Model
	credFocus int
	avatarIdx int

	picker  filepicker.Model
	picking bool

	notice  string
	alert   string
	pending bool

	width  int
	height int
}

// NewRegistrationModel creates the registration screen. Requests use ctx;
// results arriving after it is done are dropped.
func NewRegistrationModel(ctx context.Context, d deps, codes messenger.CodeSource) *RegistrationModel {
	m := &RegistrationModel{
		deps:      d,
		ctx:       ctx,
		wizard:    messenger.NewWizard(codes),
		keyMap:    DefaultRegistrationKeyMap(),
		avatarIdx: -1,
	}

	m.phone = newField("+7 999 123-45-67", 20)
	m.code = newField("0000", 4)

	m.creds[credPassword] = newField("Password", 64)
	m.creds[credPassword].EchoMode = textinput.EchoPassword
	m.creds[credPassword].EchoCharacter = '•'
	m.creds[credNickname] = newField("Nickname", 32)
	m.creds[credUsername] = newField("username", 32)

	m.picker = filepicker.New()
	m.picker.AllowedTypes = AvatarExtensions
	m.picker.Height = 10
	if home, err := os.UserHomeDir(); err == nil {
		m.picker.CurrentDirectory = home
	}
	return m
}

func newField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	return ti
}

// Init focuses the phone input
func (m *RegistrationModel) Init() tea.Cmd {
	return m.phone.Focus()
}

// Wizard returns the underlying wizard
func (m *RegistrationModel) Wizard() *messenger.Wizard {
	return m.wizard
}

// Notice returns the out-of-band notice, such as the verification code
func (m *RegistrationModel) Notice() string {
	return m.notice
}

// Alert returns the blocking alert, if any
func (m *RegistrationModel) Alert() string {
	return m.alert
}

// Pending reports whether the registration request is in flight
func (m *RegistrationModel) Pending() bool {
	return m.pending
}

// Update handles messages for the registration screen
func (m *RegistrationModel) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(registerResultMsg); ok {
		return m.handleResult(res)
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	// Alerts block until dismissed
	if m.alert != "" {
		m.alert = ""
		return nil
	}
	if m.pending {
		return nil
	}

	switch m.wizard.Stage() {
	case messenger.StagePhone:
		if key.Matches(km, m.keyMap.Submit) {
			return m.submitPhone()
		}
	case messenger.StageCode:
		if key.Matches(km, m.keyMap.Submit) {
			return m.submitCode()
		}
	case messenger.StageCredentials:
		switch {
		case key.Matches(km, m.keyMap.Submit):
			return m.submitCredentials()
		case key.Matches(km, m.keyMap.Next):
			return m.focusCred((m.credFocus + 1) % credCount)
		case key.Matches(km, m.keyMap.Prev):
			return m.focusCred((m.credFocus + credCount - 1) % credCount)
		}
	case messenger.StageAvatar:
		switch {
		case key.Matches(km, m.keyMap.Left):
			m.chooseEmoji(m.avatarIdx - 1)
		case key.Matches(km, m.keyMap.Right):
			m.chooseEmoji(m.avatarIdx + 1)
		case key.Matches(km, m.keyMap.Upload):
			m.picking = true
			return m.picker.Init()
		case key.Matches(km, m.keyMap.Submit):
			return m.submit()
		}
		return nil
	}

	return m.updateFocused(msg)
}

func (m *RegistrationModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.wizard.Stage() {
	case messenger.StagePhone:
		m.phone, cmd = m.phone.Update(msg)
	case messenger.StageCode:
		m.code, cmd = m.code.Update(msg)
	case messenger.StageCredentials:
		m.creds[m.credFocus], cmd = m.creds[m.credFocus].Update(msg)
	}
	return cmd
}

func (m *RegistrationModel) submitPhone() tea.Cmd {
	phone := strings.TrimSpace(m.phone.Value())
	if !messenger.CanSubmitPhone(phone) {
		return nil
	}
	code, err := m.wizard.SubmitPhone(phone)
	if err != nil {
		return nil
	}
	m.notice = fmt.Sprintf("Verification code for %s: %s", phone, code)
	m.phone.Blur()
	return m.code.Focus()
}

func (m *RegistrationModel) submitCode() tea.Cmd {
	code := strings.TrimSpace(m.code.Value())
	if !messenger.CanVerify(code) {
		return nil
	}
	if err := m.wizard.VerifyCode(code); err != nil {
		if errors.Is(err, messenger.ErrCodeMismatch) {
			m.alert = "Invalid code"
		}
		return nil
	}
	m.notice = ""
	m.code.Blur()
	return m.focusCred(credPassword)
}

func (m *RegistrationModel) credentials() messenger.Credentials {
	return messenger.Credentials{
		Password: m.creds[credPassword].Value(),
		Nickname: strings.TrimSpace(m.creds[credNickname].Value()),
		Username: strings.TrimPrefix(strings.TrimSpace(m.creds[credUsername].Value()), "@"),
	}
}

func (m *RegistrationModel) submitCredentials() tea.Cmd {
	c := m.credentials()
	if !messenger.CanSubmitCredentials(c) {
		// Enter moves on until every field is filled
		if m.credFocus < credCount-1 {
			return m.focusCred(m.credFocus + 1)
		}
		return nil
	}
	if err := m.wizard.SubmitCredentials(c); err != nil {
		return nil
	}
	m.creds[m.credFocus].Blur()
	return nil
}

func (m *RegistrationModel) focusCred(i int) tea.Cmd {
	for j := range m.creds {
		m.creds[j].Blur()
	}
	m.credFocus = i
	return m.creds[i].Focus()
}

func (m *RegistrationModel) chooseEmoji(i int) {
	n := len(messenger.AvatarEmojis)
	i = (i + n) % n
	if err := m.wizard.SelectAvatar(messenger.AvatarEmojis[i]); err == nil {
		m.avatarIdx = i
	}
}

func (m *RegistrationModel) updatePicker(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keyMap.Dismiss) {
		m.picking = false
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		avatar, err := LoadAvatar(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("registration: avatar rejected")
			m.alert = "Could not use this file as an avatar"
			return nil
		}
		if err := m.wizard.SelectAvatar(avatar); err == nil {
			m.avatarIdx = -1
		}
		return nil
	}
	if ok, _ := m.picker.DidSelectDisabledFile(msg); ok {
		m.alert = "Only images can be used as an avatar"
	}
	return cmd
}

func (m *RegistrationModel) submit() tea.Cmd {
	req, err := m.wizard.Request()
	if err != nil {
		return nil
	}
	m.pending = true

	ctx, api, sessions := m.ctx, m.deps.api, m.deps.sessions
	return func() tea.Msg {
		user, err := messenger.Register(ctx, api, sessions, req)
		if ctx.Err() != nil {
			return nil
		}
		return registerResultMsg{user: user, err: err}
	}
}

func (m *RegistrationModel) handleResult(res registerResultMsg) tea.Cmd {
	m.pending = false
	if res.err != nil {
		log.Warn().Err(res.err).Msg("registration: request failed")
		m.alert = client.UserMessage(res.err, "Registration failed")
		return nil
	}
	profile, err := m.wizard.Complete()
	if err != nil {
		return nil
	}
	user := res.user
	return func() tea.Msg {
		return RegisteredMsg{User: user, Profile: profile}
	}
}

// Capturing reports whether keys are going into a text field
func (m *RegistrationModel) Capturing() bool {
	return m.picking || m.wizard.Stage() != messenger.StageAvatar
}

// Help returns the key help for the current stage
func (m *RegistrationModel) Help() string {
	switch {
	case m.alert != "":
		return "any key: dismiss"
	case m.picking:
		return "↑/↓: navigate | Enter: open/select | Esc: back to emoji"
	}
	switch m.wizard.Stage() {
	case messenger.StageCredentials:
		return "tab: next field | Enter: continue"
	case messenger.StageAvatar:
		return "←/→: choose emoji | u: upload photo | Enter: finish"
	default:
		return "Enter: continue"
	}
}

// SetSize sets the screen dimensions
func (m *RegistrationModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.picker.Height = max(height-14, 5)
}

// View renders the registration card
func (m *RegistrationModel) View() string {
	st := m.deps.styles

	var b strings.Builder
	b.WriteString(st.SidebarLogo.Render("wix"))
	b.WriteString("\n")
	b.WriteString(m.renderDots())
	b.WriteString("\n\n")

	switch m.wizard.Stage() {
	case messenger.StagePhone:
		b.WriteString(st.DialogTitle.Render("Enter your phone number"))
		b.WriteString("\n")
		b.WriteString(st.InputFocused.Render(m.phone.View()))
		b.WriteString("\n")
		b.WriteString(m.button("Get code", messenger.CanSubmitPhone(strings.TrimSpace(m.phone.Value()))))

	case messenger.StageCode:
		b.WriteString(st.DialogTitle.Render("Enter the verification code"))
		b.WriteString("\n")
		b.WriteString(st.Subtle.Render("Sent to " + m.wizard.Phone()))
		b.WriteString("\n")
		b.WriteString(st.InputFocused.Render(m.code.View()))
		b.WriteString("\n")
		b.WriteString(m.button("Confirm", messenger.CanVerify(strings.TrimSpace(m.code.Value()))))

	case messenger.StageCredentials:
		b.WriteString(st.DialogTitle.Render("Create your account"))
		b.WriteString("\n")
		labels := [credCount]string{"Password", "Nickname", "Username"}
		for i := range m.creds {
			b.WriteString(st.InputLabel.Render(labels[i]))
			b.WriteString("\n")
			style := st.Input
			if i == m.credFocus {
				style = st.InputFocused
			}
			b.WriteString(style.Render(m.creds[i].View()))
			b.WriteString("\n")
		}
		b.WriteString(m.button("Continue", messenger.CanSubmitCredentials(m.credentials())))

	case messenger.StageAvatar:
		b.WriteString(st.DialogTitle.Render("Choose an avatar"))
		b.WriteString("\n")
		if m.picking {
			b.WriteString(m.picker.View())
			b.WriteString("\n")
			break
		}
		b.WriteString(m.renderEmojiGrid())
		b.WriteString("\n")
		if store.IsImageAvatar(m.wizard.Avatar()) {
			b.WriteString(st.Success.Render("Photo selected"))
		} else {
			b.WriteString(st.Subtle.Render("or press u to upload a photo"))
		}
		b.WriteString("\n\n")
		if m.pending {
			b.WriteString(st.Notice.Render("Registering..."))
		} else {
			b.WriteString(m.button("Finish", m.wizard.Avatar() != ""))
		}
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(st.Notice.Render(m.notice))
	}
	if m.alert != "" {
		b.WriteString("\n\n")
		b.WriteString(st.Dialog.BorderForeground(TextErrorColor).Render(st.Error.Render(m.alert)))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, st.Dialog.Render(b.String()))
}

func (m *RegistrationModel) button(label string, enabled bool) string {
	if enabled {
		return m.deps.styles.DialogButton.Render(label)
	}
	return m.deps.styles.ButtonMuted.Render(label)
}

func (m *RegistrationModel) renderDots() string {
	st := m.deps.styles
	dots := make([]string, 0, messenger.StageCount)
	for i := 1; i <= messenger.StageCount; i++ {
		if messenger.Stage(i) <= m.wizard.Stage() {
			dots = append(dots, st.DotActive.Render("●"))
		} else {
			dots = append(dots, st.Dot.Render("●"))
		}
	}
	return strings.Join(dots, " ")
}

func (m *RegistrationModel) renderEmojiGrid() string {
	st := m.deps.styles
	var rows []string
	var row []string
	for i, e := range messenger.AvatarEmojis {
		var cell string
		if i == m.avatarIdx {
			cell = st.SidebarItemActive.Render(e)
		} else {
			cell = st.SidebarItem.Render(e)
		}
		row = append(row, cell)
		if len(row) == 5 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
