package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/config"
	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// Section is one of the mutually exclusive views inside the messenger shell
type Section int

const (
	SectionGot Section = iota
	SectionChats
	SectionContacts
	SectionProfile
	SectionSettings
	SectionPremium
)

// Sections lists the sidebar entries top to bottom
var Sections = []Section{SectionGot, SectionChats, SectionContacts, SectionProfile, SectionSettings, SectionPremium}

func (s Section) String() string {
	switch s {
	case SectionGot:
		return "Got"
	case SectionChats:
		return "Chats"
	case SectionContacts:
		return "Contacts"
	case SectionProfile:
		return "Profile"
	case SectionSettings:
		return "Settings"
	case SectionPremium:
		return "Premium"
	default:
		return "Unknown"
	}
}

// Icon is the sidebar glyph for the section
func (s Section) Icon() string {
	switch s {
	case SectionGot:
		return "🤖"
	case SectionChats:
		return "💬"
	case SectionContacts:
		return "👥"
	case SectionProfile:
		return "👤"
	case SectionSettings:
		return "⚙"
	case SectionPremium:
		return "👑"
	default:
		return "?"
	}
}

// API is the remote surface the views call
type API interface {
	messenger.Registrar
	messenger.Payer
}

// deps are shared by every view for the life of the app
type deps struct {
	cfg      *config.Config
	styles   *Styles
	sessions messenger.Sessions
	api      API
	clock    messenger.Clock
	// profile is the signed in user's profile, nil before registration
	profile *store.UserProfile
}

// mount identifies one mounted section instance. Its context is cancelled
// when the section is torn down.
type mount struct {
	ctx context.Context
	gen uint64
}

func (m mount) tag() owned {
	return owned{gen: m.gen}
}

// owned is embedded in asynchronous results so the shell can drop the ones
// addressed to a torn down section
type owned struct {
	gen uint64
}

func (o owned) owner() uint64 {
	return o.gen
}

type ownedMsg interface {
	owner() uint64
}

// sectionView is a mounted section
type sectionView interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Capturing reports whether keys are going into a text field
	Capturing() bool
	Help() string
}

const sidebarWidth = 16

// ShellModel holds the active section and renders exactly one section view
type ShellModel struct {
	deps   deps
	parent context.Context

	active Section
	view   sectionView
	gen    uint64
	cancel context.CancelFunc

	width  int
	height int
}

// NewShellModel creates the shell with the Chats section mounted
func NewShellModel(parent context.Context, d deps) *ShellModel {
	s := &ShellModel{deps: d, parent: parent}
	s.mount(SectionChats)
	return s
}

// Init initializes the mounted section
func (s *ShellModel) Init() tea.Cmd {
	return s.view.Init()
}

// Active returns the active section
func (s *ShellModel) Active() Section {
	return s.active
}

// Show tears down the active section and mounts sec in its place
func (s *ShellModel) Show(sec Section) tea.Cmd {
	if sec == s.active && s.view != nil {
		return nil
	}
	s.mount(sec)
	return s.view.Init()
}

// Cycle moves to the next or previous sidebar entry
func (s *ShellModel) Cycle(direction int) tea.Cmd {
	idx := 0
	for i, sec := range Sections {
		if sec == s.active {
			idx = i
		}
	}
	n := len(Sections)
	return s.Show(Sections[(idx+direction+n)%n])
}

func (s *ShellModel) mount(sec Section) {
	s.teardown()

	s.gen++
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.active = sec
	m := mount{ctx: ctx, gen: s.gen}

	switch sec {
	case SectionGot:
		s.view = NewAssistantModel(s.deps, m)
	case SectionContacts:
		s.view = NewContactsModel(s.deps, m)
	case SectionProfile:
		s.view = NewProfileModel(s.deps, m)
	case SectionSettings:
		s.view = NewSettingsModel(s.deps, m)
	case SectionPremium:
		s.view = NewPremiumModel(s.deps, m)
	default:
		s.active = SectionChats
		s.view = NewChatsModel(s.deps, m)
	}
	s.view.SetSize(s.contentSize())
	log.Debug().Str("section", s.active.String()).Uint64("gen", s.gen).Msg("shell: section mounted")
}

func (s *ShellModel) teardown() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.view = nil
}

// Close tears down the active section
func (s *ShellModel) Close() {
	s.teardown()
}

// Update routes msg to the active section. Results owned by an earlier
// mount are dropped.
func (s *ShellModel) Update(msg tea.Msg) tea.Cmd {
	if s.view == nil {
		return nil
	}
	if om, ok := msg.(ownedMsg); ok && om.owner() != s.gen {
		log.Debug().Uint64("owner", om.owner()).Uint64("gen", s.gen).Msg("shell: dropped result for torn down section")
		return nil
	}
	return s.view.Update(msg)
}

// Capturing reports whether the active section is taking text input
func (s *ShellModel) Capturing() bool {
	return s.view != nil && s.view.Capturing()
}

// Help returns the active section's key help
func (s *ShellModel) Help() string {
	if s.view == nil {
		return ""
	}
	return s.view.Help()
}

// SetSize sets the shell dimensions
func (s *ShellModel) SetSize(width, height int) {
	s.width = width
	s.height = height
	if s.view != nil {
		s.view.SetSize(s.contentSize())
	}
}

func (s *ShellModel) contentSize() (int, int) {
	w := s.width - sidebarWidth - 1
	if w < 20 {
		w = 20
	}
	return w, s.height
}

// View renders the sidebar next to the active section
func (s *ShellModel) View() string {
	st := s.deps.styles

	var b strings.Builder
	b.WriteString(st.SidebarLogo.Render("w  wix"))
	b.WriteString("\n")
	for _, sec := range Sections {
		label := sec.Icon() + " " + sec.String()
		if sec == s.active {
			b.WriteString(st.SidebarItemActive.Width(sidebarWidth - 4).Render(label))
		} else {
			b.WriteString(st.SidebarItem.Width(sidebarWidth - 4).Render(label))
		}
		b.WriteString("\n")
	}
	sidebar := st.Sidebar.Width(sidebarWidth - 2).Height(max(s.height-2, 0)).Render(b.String())

	content := ""
	if s.view != nil {
		content = s.view.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}

func chatsFromConfig(seed []config.ChatConfig) []store.Chat {
	chats := make([]store.Chat, 0, len(seed))
	for _, c := range seed {
		chats = append(chats, store.Chat{
			ID:          c.ID,
			Name:        c.Name,
			Avatar:      c.Avatar,
			LastMessage: c.LastMessage,
			Time:        c.Time,
			Unread:      c.Unread,
		})
	}
	return chats
}
