package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/n0ko/wix-tui/internal/config"
)

// Colors used throughout the application
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#8B5CF6") // Purple
	SecondaryColor = lipgloss.Color("#0EA5E9") // Sky
	AccentColor    = lipgloss.Color("#D946EF") // Fuchsia
	PremiumColor   = lipgloss.Color("#F59E0B") // Amber

	// Neutral colors
	BackgroundColor = lipgloss.Color("#0F0F14")
	SurfaceColor    = lipgloss.Color("#1C1B22")
	BorderColor     = lipgloss.Color("#3F3D4A")

	// Text colors
	TextColor        = lipgloss.Color("#F4F4F5")
	TextMutedColor   = lipgloss.Color("#A1A1AA")
	TextSuccessColor = lipgloss.Color("#10B981")
	TextErrorColor   = lipgloss.Color("#EF4444")
	TextWarningColor = lipgloss.Color("#F59E0B")

	// Message colors
	SentMessageColor     = lipgloss.Color("#8B5CF6")
	ReceivedMessageColor = lipgloss.Color("#2A2933")
)

// Styles for different UI components
type Styles struct {
	// App-level styles
	StatusBar       lipgloss.Style
	StatusBarLeader lipgloss.Style // Special style when leader key is active
	HelpBar         lipgloss.Style

	// Sidebar
	Sidebar           lipgloss.Style
	SidebarLogo       lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style

	// Panel styles
	Panel          lipgloss.Style
	PanelActive    lipgloss.Style
	PanelTitleText lipgloss.Style
	Subtle         lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ItemName         lipgloss.Style
	ItemPreview      lipgloss.Style
	ItemTime         lipgloss.Style
	ItemBadge        lipgloss.Style

	// Message styles
	MessageSent     lipgloss.Style
	MessageReceived lipgloss.Style
	MessageTime     lipgloss.Style
	Online          lipgloss.Style

	// Input styles
	Input            lipgloss.Style
	InputFocused     lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputLabel       lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
	Notice  lipgloss.Style

	// Dialog styles
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style
	ButtonMuted  lipgloss.Style

	// Misc
	Premium   lipgloss.Style
	ToggleOn  lipgloss.Style
	ToggleOff lipgloss.Style
	Dot       lipgloss.Style
	DotActive lipgloss.Style
}

// NewStyles returns the application styles using the configured theme colors
func NewStyles(theme config.ThemeConfig) *Styles {
	primary := PrimaryColor
	if theme.PrimaryColor != "" {
		primary = lipgloss.Color(theme.PrimaryColor)
	}
	secondary := SecondaryColor
	if theme.SecondaryColor != "" {
		secondary = lipgloss.Color(theme.SecondaryColor)
	}

	s := &Styles{}

	s.StatusBar = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	s.StatusBarLeader = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(TextWarningColor).
		Bold(true).
		Padding(0, 1)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Background(SurfaceColor).
		Padding(0, 1)

	s.Sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, false, false).
		BorderForeground(BorderColor).
		Padding(1, 1)

	s.SidebarLogo = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		MarginBottom(1)

	s.SidebarItem = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Padding(0, 1)

	s.SidebarItemActive = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(primary).
		Bold(true).
		Padding(0, 1)

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	s.PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(0, 1)

	s.PanelTitleText = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	s.Subtle = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	s.ListItem = lipgloss.NewStyle().
		Padding(0, 1)

	s.ListItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(SurfaceColor).
		Foreground(TextColor)

	s.ItemName = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	s.ItemPreview = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	s.ItemTime = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Align(lipgloss.Right)

	s.ItemBadge = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(primary).
		Bold(true).
		Padding(0, 1)

	s.MessageSent = lipgloss.NewStyle().
		Background(SentMessageColor).
		Foreground(TextColor).
		Padding(0, 1).
		MarginLeft(4)

	s.MessageReceived = lipgloss.NewStyle().
		Background(ReceivedMessageColor).
		Foreground(TextColor).
		Padding(0, 1).
		MarginRight(4)

	s.MessageTime = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Italic(true)

	s.Online = lipgloss.NewStyle().
		Foreground(TextSuccessColor)

	s.Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	s.InputFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondary).
		Padding(0, 1)

	s.InputPrompt = lipgloss.NewStyle().
		Foreground(primary)

	s.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	s.InputLabel = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Bold(true)

	s.Error = lipgloss.NewStyle().
		Foreground(TextErrorColor).
		Bold(true)

	s.Success = lipgloss.NewStyle().
		Foreground(TextSuccessColor).
		Bold(true)

	s.Notice = lipgloss.NewStyle().
		Foreground(TextWarningColor)

	s.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(1, 2)

	s.DialogTitle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		MarginBottom(1)

	s.DialogButton = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(primary).
		Padding(0, 2)

	s.ButtonMuted = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Background(SurfaceColor).
		Padding(0, 2)

	s.Premium = lipgloss.NewStyle().
		Foreground(PremiumColor).
		Bold(true)

	s.ToggleOn = lipgloss.NewStyle().
		Foreground(TextSuccessColor)

	s.ToggleOff = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	s.Dot = lipgloss.NewStyle().
		Foreground(BorderColor)

	s.DotActive = lipgloss.NewStyle().
		Foreground(primary)

	return s
}

// DefaultStyles returns the styles for the default theme
func DefaultStyles() *Styles {
	return NewStyles(config.ThemeConfig{})
}

// Truncate shortens s to fit width terminal cells
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "...")
}
