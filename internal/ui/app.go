package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/config"
	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// AppState represents the current screen of the application
type AppState int

const (
	StateRegistration AppState = iota
	StateMessenger
)

// AppKeyMap defines the global key bindings
type AppKeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
}

// KeyMapFromConfig builds an AppKeyMap from the configuration
func KeyMapFromConfig(cfg *config.Config) AppKeyMap {
	kb := cfg.Keybinds
	return AppKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(kb.Quit),
			key.WithHelp(kb.Quit, "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev section"),
		),
	}
}

// Option configures an App
type Option func(*App)

// WithCodeSource sets the verification code generator
func WithCodeSource(codes messenger.CodeSource) Option {
	return func(a *App) { a.codes = codes }
}

// WithClock sets the clock used for message times
func WithClock(clock messenger.Clock) Option {
	return func(a *App) { a.deps.clock = clock }
}

// App is the root model. It shows the registration screen until a user is
// registered and the messenger shell afterwards.
type App struct {
	cfg    *config.Config
	deps   deps
	keyMap AppKeyMap
	codes  messenger.CodeSource

	state            AppState
	statusMsg        string
	leaderKeyPressed bool

	width  int
	height int

	registration *RegistrationModel
	regCancel    context.CancelFunc
	shell        *ShellModel

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the application. A stored user skips registration.
func NewApp(cfg *config.Config, sessions messenger.Sessions, api API, opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		cfg: cfg,
		deps: deps{
			cfg:      cfg,
			styles:   NewStyles(cfg.Theme),
			sessions: sessions,
			api:      api,
		},
		keyMap: KeyMapFromConfig(cfg),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(a)
	}

	user, err := sessions.LoadUser()
	if err != nil {
		log.Error().Err(err).Msg("app: failed to restore session")
	}
	if user != nil {
		log.Info().Str("username", user.Username).Msg("app: session restored")
		a.enterMessenger(user.Profile())
	} else {
		a.state = StateRegistration
		regCtx, regCancel := context.WithCancel(ctx)
		a.regCancel = regCancel
		a.registration = NewRegistrationModel(regCtx, a.deps, a.codes)
	}
	return a
}

// State returns the current screen
func (a *App) State() AppState {
	return a.state
}

// Shell returns the messenger shell, or nil before registration
func (a *App) Shell() *ShellModel {
	return a.shell
}

// Profile returns the signed in user's profile, or nil before registration
func (a *App) Profile() *store.UserProfile {
	return a.deps.profile
}

// Registration returns the registration screen, or nil once registered
func (a *App) Registration() *RegistrationModel {
	return a.registration
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	if a.state == StateMessenger {
		return a.shell.Init()
	}
	return a.registration.Init()
}

func (a *App) enterMessenger(profile store.UserProfile) {
	if a.regCancel != nil {
		a.regCancel()
		a.regCancel = nil
	}
	a.registration = nil
	a.deps.profile = &profile
	a.state = StateMessenger
	a.shell = NewShellModel(a.ctx, a.deps)
	a.updateSizes()
}

// Update handles all application messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keyMap.ForceQuit) {
			return a, a.quit()
		}

		// Handle leader key combinations first
		if a.leaderKeyPressed {
			a.leaderKeyPressed = false
			a.statusMsg = ""
			if msg.String() == "esc" {
				return a, nil
			}
			if msg.String() == a.cfg.Keybinds.Quit {
				return a, a.quit()
			}
			if sec, ok := a.leaderSection(msg); ok && a.state == StateMessenger {
				return a, a.shell.Show(sec)
			}
			// Not a leader combo, continue normal handling
		}

		if a.matchesLeaderKey(msg) {
			a.leaderKeyPressed = true
			a.statusMsg = "-- LEADER --"
			return a, nil
		}

		if !a.capturing() {
			switch {
			case key.Matches(msg, a.keyMap.Quit):
				return a, a.quit()
			case a.state == StateMessenger && key.Matches(msg, a.keyMap.Tab):
				return a, a.shell.Cycle(1)
			case a.state == StateMessenger && key.Matches(msg, a.keyMap.ShiftTab):
				return a, a.shell.Cycle(-1)
			}
		}

	case RegisteredMsg:
		log.Info().Str("username", msg.Profile.Username).Msg("app: registered")
		a.enterMessenger(msg.Profile)
		a.statusMsg = fmt.Sprintf("Welcome, %s!", msg.Profile.Nickname)
		return a, a.shell.Init()

	case OpenEditorMsg:
		return a, StartEditorCmd(a.cfg, msg)

	case EditorResultMsg:
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Msg("app: editor failed")
			a.statusMsg = fmt.Sprintf("Editor error: %v", msg.Err)
			return a, nil
		}
		a.statusMsg = "Press Enter to send"

	case EditorCancelledMsg:
		a.statusMsg = "Message cancelled"
		return a, nil
	}

	if a.state == StateMessenger {
		return a, a.shell.Update(msg)
	}
	return a, a.registration.Update(msg)
}

func (a *App) quit() tea.Cmd {
	if a.shell != nil {
		a.shell.Close()
	}
	a.cancel()
	return tea.Quit
}

// capturing reports whether plain keys belong to a text field
func (a *App) capturing() bool {
	if a.state == StateMessenger {
		return a.shell.Capturing()
	}
	return a.registration.Capturing()
}

// matchesLeaderKey checks if the key message matches the configured leader key
// Handles various representations of key combinations like ctrl+space
func (a *App) matchesLeaderKey(msg tea.KeyMsg) bool {
	leaderKey := a.cfg.Keybinds.LeaderKey
	keyStr := msg.String()

	if keyStr == leaderKey {
		return true
	}

	// ctrl+space arrives as NUL, reported as ctrl+@
	if leaderKey == "ctrl+space" {
		if keyStr == "ctrl+ " || keyStr == "ctrl+@" || msg.Type == tea.KeyCtrlAt {
			return true
		}
		if len(keyStr) == 1 && keyStr[0] == 0 {
			return true
		}
	}

	return false
}

// leaderSection maps the key after the leader to a section
func (a *App) leaderSection(msg tea.KeyMsg) (Section, bool) {
	nav := a.cfg.Keybinds.Navigation
	switch msg.String() {
	case nav.Got:
		return SectionGot, true
	case nav.Chats:
		return SectionChats, true
	case nav.Contacts:
		return SectionContacts, true
	case nav.Profile:
		return SectionProfile, true
	case nav.Settings:
		return SectionSettings, true
	case nav.Premium:
		return SectionPremium, true
	}
	return 0, false
}

// updateSizes updates component sizes based on current terminal dimensions
func (a *App) updateSizes() {
	if a.shell != nil {
		a.shell.SetSize(a.width, a.height-2)
	}
	if a.registration != nil {
		a.registration.SetSize(a.width, a.height-1)
	}
}

// View renders the application
func (a *App) View() string {
	var content string
	if a.state == StateMessenger {
		content = lipgloss.JoinVertical(lipgloss.Left,
			a.renderStatusBar(),
			a.shell.View(),
			a.renderHelpBar(),
		)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left,
			a.registration.View(),
			a.renderHelpBar(),
		)
	}

	// Constrain to terminal dimensions
	return lipgloss.NewStyle().
		MaxHeight(a.height).
		MaxWidth(a.width).
		Render(content)
}

// renderStatusBar renders the status bar
func (a *App) renderStatusBar() string {
	st := a.deps.styles

	left := "wix"
	if a.statusMsg != "" {
		left = a.statusMsg
	}
	right := "[" + a.shell.Active().String() + "]"

	spacing := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if spacing < 1 {
		spacing = 1
	}
	status := left + strings.Repeat(" ", spacing) + right

	if a.leaderKeyPressed {
		return st.StatusBarLeader.Width(a.width).Render(status)
	}
	return st.StatusBar.Width(a.width).Render(status)
}

// renderHelpBar renders the help bar
func (a *App) renderHelpBar() string {
	st := a.deps.styles
	kb := a.cfg.Keybinds

	if a.leaderKeyPressed {
		nav := kb.Navigation
		help := fmt.Sprintf("%s: got | %s: chats | %s: contacts | %s: profile | %s: settings | %s: premium | %s: quit | Esc: cancel",
			nav.Got, nav.Chats, nav.Contacts, nav.Profile, nav.Settings, nav.Premium, kb.Quit)
		return st.HelpBar.Width(a.width).Render(help)
	}

	var help string
	if a.state == StateMessenger {
		help = fmt.Sprintf("%s | %s+key: sections", a.shell.Help(), kb.LeaderKey)
		if !a.shell.Capturing() {
			help += fmt.Sprintf(" | tab: next | %s: quit", kb.Quit)
		}
	} else {
		help = fmt.Sprintf("%s | %s+%s or ctrl+c: quit", a.registration.Help(), kb.LeaderKey, kb.Quit)
	}
	return st.HelpBar.Width(a.width).Render(Truncate(help, max(a.width-2, 0)))
}
