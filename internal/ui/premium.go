package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/messenger"
)

// PremiumKeyMap defines the key bindings for the premium section
type PremiumKeyMap struct {
	Subscribe key.Binding
	Up        key.Binding
	Down      key.Binding
	SBP       key.Binding
	Card      key.Binding
	Pay       key.Binding
	Close     key.Binding
}

// DefaultPremiumKeyMap returns the default key bindings
func DefaultPremiumKeyMap() PremiumKeyMap {
	return PremiumKeyMap{
		Subscribe: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "get premium"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev method"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next method"),
		),
		SBP: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "SBP"),
		),
		Card: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "card"),
		),
		Pay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "pay"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// paymentResultMsg carries the outcome of one payment request
type paymentResultMsg struct {
	owned
	result *client.PaymentResult
	err    error
}

// flash is a dismissible notification
type flash struct {
	text  string
	isErr bool
}

// PremiumModel is the Premium section: the feature list and the payment
// dialog
type PremiumModel struct {
	deps     deps
	mount    mount
	checkout messenger.Checkout
	keyMap   PremiumKeyMap
	notice   *flash

	width  int
	height int
}

// NewPremiumModel creates the Premium section
func NewPremiumModel(d deps, m mount) *PremiumModel {
	return &PremiumModel{
		deps:   d,
		mount:  m,
		keyMap: DefaultPremiumKeyMap(),
	}
}

// Checkout returns the payment dialog state
func (m *PremiumModel) Checkout() *messenger.Checkout {
	return &m.checkout
}

// Notice returns the current notification text
func (m *PremiumModel) Notice() (string, bool) {
	if m.notice == nil {
		return "", false
	}
	return m.notice.text, m.notice.isErr
}

// Init initializes the section
func (m *PremiumModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the section
func (m *PremiumModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case paymentResultMsg:
		m.checkout.Finish()
		m.notice = paymentNotice(msg.result, msg.err)
		return nil

	case tea.KeyMsg:
		if m.checkout.IsOpen() {
			return m.updateDialog(msg)
		}
		switch {
		case key.Matches(msg, m.keyMap.Subscribe):
			m.notice = nil
			m.checkout.Open()
		case key.Matches(msg, m.keyMap.Close):
			m.notice = nil
		}
	}
	return nil
}

func (m *PremiumModel) updateDialog(msg tea.KeyMsg) tea.Cmd {
	if m.checkout.Pending() {
		return nil
	}
	switch {
	case key.Matches(msg, m.keyMap.Close):
		m.checkout.Close()
	case key.Matches(msg, m.keyMap.SBP):
		_ = m.checkout.Choose(client.PaymentSBP)
	case key.Matches(msg, m.keyMap.Card):
		_ = m.checkout.Choose(client.PaymentCard)
	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down):
		m.cycleMethod()
	case key.Matches(msg, m.keyMap.Pay):
		method, err := m.checkout.Begin()
		if err != nil {
			return nil
		}
		return m.pay(method)
	}
	return nil
}

func (m *PremiumModel) cycleMethod() {
	next := PaymentOptionAfter(m.checkout.Method())
	_ = m.checkout.Choose(next)
}

// PaymentOptionAfter returns the method following current, wrapping around
func PaymentOptionAfter(current client.PaymentMethod) client.PaymentMethod {
	for i, opt := range messenger.PaymentOptions {
		if opt.Method == current {
			return messenger.PaymentOptions[(i+1)%len(messenger.PaymentOptions)].Method
		}
	}
	return messenger.PaymentOptions[0].Method
}

func (m *PremiumModel) pay(method client.PaymentMethod) tea.Cmd {
	ctx, tag := m.mount.ctx, m.mount.tag()
	api, sessions := m.deps.api, m.deps.sessions
	return func() tea.Msg {
		res, err := messenger.Pay(ctx, api, sessions, method)
		return paymentResultMsg{owned: tag, result: res, err: err}
	}
}

func paymentNotice(res *client.PaymentResult, err error) *flash {
	switch {
	case err == nil:
		text := "Premium activated!"
		if res != nil && res.Message != "" {
			text = res.Message
		}
		return &flash{text: text}
	case errors.Is(err, messenger.ErrNotSignedIn):
		return &flash{text: "Sign in required", isErr: true}
	default:
		return &flash{text: client.UserMessage(err, "Payment failed"), isErr: true}
	}
}

// Capturing reports whether keys are going into a text field
func (m *PremiumModel) Capturing() bool {
	return false
}

// Help returns the key help for the current state
func (m *PremiumModel) Help() string {
	if m.checkout.IsOpen() {
		return "1: SBP | 2: card | ↑/↓: switch | Enter: pay | Esc: cancel"
	}
	return "Enter: get premium | Esc: dismiss"
}

// SetSize sets the section dimensions
func (m *PremiumModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the feature list, the notification and the dialog
func (m *PremiumModel) View() string {
	st := m.deps.styles

	var b strings.Builder
	b.WriteString(st.Premium.Render("👑 wix Premium"))
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("Unlock the full potential of the messenger"))
	b.WriteString("\n\n")

	for _, f := range messenger.PremiumFeatures {
		b.WriteString(f.Icon + "  " + st.ItemName.Render(f.Title) + "\n")
		b.WriteString("    " + st.ItemPreview.Render(f.Description) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Premium.Render(fmt.Sprintf("%d ₽", client.PremiumAmount)))
	b.WriteString(st.Subtle.Render(" / month"))
	b.WriteString("\n")
	b.WriteString(st.DialogButton.Render("Get Premium"))
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("First 7 days free, cancel anytime"))
	b.WriteString("\n")

	if m.notice != nil {
		b.WriteString("\n")
		if m.notice.isErr {
			b.WriteString(st.Error.Render("✗ " + m.notice.text))
		} else {
			b.WriteString(st.Success.Render("✓ " + m.notice.text))
		}
		b.WriteString(st.Subtle.Render("  (esc)"))
	}

	page := b.String()
	if m.checkout.IsOpen() {
		page = lipgloss.Place(m.width-4, m.height-2, lipgloss.Center, lipgloss.Center, m.renderDialog())
	}
	return st.PanelActive.Width(m.width).Height(m.height - 2).Render(page)
}

func (m *PremiumModel) renderDialog() string {
	st := m.deps.styles

	var b strings.Builder
	b.WriteString(st.DialogTitle.Render("Choose a payment method"))
	b.WriteString("\n")
	for i, opt := range messenger.PaymentOptions {
		marker := "( )"
		line := fmt.Sprintf("%d. %s", i+1, opt.Title)
		if opt.Method == m.checkout.Method() {
			marker = "(●)"
			line = st.ItemName.Render(line)
		}
		b.WriteString(marker + " " + line + "\n")
		b.WriteString("      " + st.ItemPreview.Render(opt.Description) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.checkout.Pending():
		b.WriteString(st.Notice.Render("Processing payment..."))
	case m.checkout.Method() == "":
		b.WriteString(st.ButtonMuted.Render(fmt.Sprintf("Pay %d ₽", client.PremiumAmount)))
	default:
		b.WriteString(st.DialogButton.Render(fmt.Sprintf("Pay %d ₽", client.PremiumAmount)))
	}
	return st.Dialog.Render(b.String())
}
