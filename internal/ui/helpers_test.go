package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/config"
	"github.com/n0ko/wix-tui/internal/logger"
	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

// fakeAPI records requests and answers with canned results
type fakeAPI struct {
	user        *store.User
	registerErr error
	payResult   *client.PaymentResult
	payErr      error

	registered []client.RegisterRequest
	paid       []client.PaymentRequest
}

func (f *fakeAPI) Register(_ context.Context, req client.RegisterRequest) (*store.User, error) {
	f.registered = append(f.registered, req)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.user, nil
}

func (f *fakeAPI) Pay(_ context.Context, req client.PaymentRequest) (*client.PaymentResult, error) {
	f.paid = append(f.paid, req)
	if f.payErr != nil {
		return nil, f.payErr
	}
	return f.payResult, nil
}

var noon = messenger.Clock(func() time.Time {
	return time.Date(2026, 3, 1, 12, 5, 0, 0, time.Local)
})

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestDeps(t *testing.T, api *fakeAPI) deps {
	t.Helper()
	logger.Discard()
	if api == nil {
		api = &fakeAPI{}
	}
	cfg := config.DefaultConfig()
	cfg.Assistant.ReplyDelay = time.Millisecond
	return deps{
		cfg:      cfg,
		styles:   DefaultStyles(),
		sessions: newTestStore(t),
		api:      api,
		clock:    noon,
	}
}

func newTestMount(t *testing.T) mount {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return mount{ctx: ctx, gen: 1}
}

func fixedCodes(code string) messenger.CodeSource {
	return func() string { return code }
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

var (
	enter = keyOf(tea.KeyEnter)
	esc   = keyOf(tea.KeyEsc)
	tab   = keyOf(tea.KeyTab)
)

// run runs cmd and returns its message; a nil cmd yields nil
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
