package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/n0ko/wix-tui/internal/store"
)

// ShareURL is the link encoded in the profile QR code
func ShareURL(username string) string {
	return "wix://user/" + username
}

// ProfileModel is the read-only Profile section
type ProfileModel struct {
	deps    deps
	profile *store.UserProfile
	premium bool

	width  int
	height int
}

// NewProfileModel shows the app's profile. The stored session only
// supplies the premium badge.
func NewProfileModel(d deps, _ mount) *ProfileModel {
	m := &ProfileModel{deps: d, profile: d.profile}
	user, err := d.sessions.LoadUser()
	switch {
	case err != nil:
		log.Error().Err(err).Msg("profile: failed to load session")
	case user != nil:
		m.premium = user.IsPremium
	}
	return m
}

// Init initializes the section
func (m *ProfileModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the section
func (m *ProfileModel) Update(tea.Msg) tea.Cmd {
	return nil
}

// Capturing reports whether keys are going into a text field
func (m *ProfileModel) Capturing() bool {
	return false
}

// Help returns the key help
func (m *ProfileModel) Help() string {
	return "scan the code to share your profile"
}

// SetSize sets the section dimensions
func (m *ProfileModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// AvatarLabel renders an avatar for the terminal; embedded images cannot
// be drawn and show as a tag
func AvatarLabel(avatar string) string {
	switch {
	case store.IsImageAvatar(avatar):
		return "[photo]"
	case avatar == "":
		return "👤"
	default:
		return avatar
	}
}

// View renders the profile card and share code
func (m *ProfileModel) View() string {
	st := m.deps.styles

	if m.profile == nil {
		return st.PanelActive.Width(m.width).Height(m.height - 2).Render(
			lipgloss.Place(m.width-4, m.height-2, lipgloss.Center, lipgloss.Center,
				st.Error.Render("Profile unavailable: sign in required")),
		)
	}

	u := m.profile
	name := st.PanelTitleText.Render(u.Nickname)
	if m.premium {
		name += " " + st.Premium.Render("👑 Premium")
	}

	card := lipgloss.JoinVertical(lipgloss.Center,
		st.PanelTitleText.Render(AvatarLabel(u.Avatar)),
		"",
		name,
		st.Subtle.Render("@"+u.Username),
		"",
		m.field("📞", "Phone", u.Phone),
		m.field("@", "Username", u.Username),
		m.field("👤", "Nickname", u.Nickname),
	)

	var share string
	if u.Username != "" {
		if qr, err := qrcode.New(ShareURL(u.Username), qrcode.Medium); err == nil {
			qrStr := qr.ToSmallString(false)
			if lipgloss.Height(qrStr) <= m.height-4 && lipgloss.Width(card)+lipgloss.Width(qrStr)+4 <= m.width {
				share = lipgloss.JoinVertical(lipgloss.Center, strings.TrimRight(qrStr, "\n"), st.Subtle.Render(ShareURL(u.Username)))
			} else {
				share = st.Subtle.Render(ShareURL(u.Username) + "\n(Resize terminal to show QR code)")
			}
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Center, st.Dialog.Render(card), "  ", share)
	return st.PanelActive.Width(m.width).Height(m.height - 2).Render(
		lipgloss.Place(m.width-4, m.height-2, lipgloss.Center, lipgloss.Center, body),
	)
}

func (m *ProfileModel) field(icon, label, value string) string {
	st := m.deps.styles
	return lipgloss.NewStyle().Width(30).Render(icon + " " + st.InputLabel.Render(label) + "\n   " + st.ItemName.Render(value))
}
