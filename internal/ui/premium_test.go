package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

func newTestPremium(t *testing.T, api *fakeAPI, user *store.User) (*PremiumModel, deps) {
	t.Helper()
	d := newTestDeps(t, api)
	if user != nil {
		require.NoError(t, d.sessions.SaveUser(user))
	}
	m := NewPremiumModel(d, newTestMount(t))
	m.SetSize(90, 36)
	return m, d
}

func TestPremium_ListsFeatures(t *testing.T) {
	m, _ := newTestPremium(t, nil, nil)

	view := m.View()
	for _, f := range messenger.PremiumFeatures {
		assert.Contains(t, view, f.Title)
	}
	assert.Contains(t, view, "299 ₽")
}

func TestPremium_PayNeedsMethod(t *testing.T) {
	api := &fakeAPI{payResult: &client.PaymentResult{Success: true}}
	m, _ := newTestPremium(t, api, &store.User{ID: 42})

	m.Update(enter)
	require.True(t, m.Checkout().IsOpen())
	assert.Contains(t, m.View(), "Choose a payment method")

	assert.Nil(t, m.Update(enter))
	assert.Empty(t, api.paid)
}

func TestPremium_PaySuccessMarksUserPremium(t *testing.T) {
	api := &fakeAPI{payResult: &client.PaymentResult{Success: true, Status: "completed"}}
	m, d := newTestPremium(t, api, &store.User{ID: 42, Username: "neo"})

	m.Update(enter)
	m.Update(runes("1"))
	assert.Equal(t, client.PaymentSBP, m.Checkout().Method())

	cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, m.Checkout().Pending())
	assert.Contains(t, m.View(), "Processing payment...")

	// The dialog is locked while the request is in flight
	m.Update(esc)
	assert.True(t, m.Checkout().IsOpen())

	m.Update(run(cmd))
	assert.False(t, m.Checkout().IsOpen())
	text, isErr := m.Notice()
	assert.Equal(t, "Premium activated!", text)
	assert.False(t, isErr)

	require.Len(t, api.paid, 1)
	assert.Equal(t, client.PaymentRequest{UserID: 42, PaymentMethod: client.PaymentSBP, Amount: client.PremiumAmount}, api.paid[0])

	user, err := d.sessions.LoadUser()
	require.NoError(t, err)
	assert.True(t, user.IsPremium)
}

func TestPremium_PayFailureShowsServerMessage(t *testing.T) {
	api := &fakeAPI{payErr: &client.RemoteError{Status: 402, Message: "Card declined"}}
	m, d := newTestPremium(t, api, &store.User{ID: 42})

	m.Update(enter)
	m.Update(runes("2"))
	m.Update(run(m.Update(enter)))

	text, isErr := m.Notice()
	assert.Equal(t, "Card declined", text)
	assert.True(t, isErr)

	user, err := d.sessions.LoadUser()
	require.NoError(t, err)
	assert.False(t, user.IsPremium)

	m.Update(esc)
	text, isErr = m.Notice()
	assert.Empty(t, text)
	assert.False(t, isErr)
}

func TestPremium_PayWithoutSession(t *testing.T) {
	api := &fakeAPI{payResult: &client.PaymentResult{Success: true}}
	m, _ := newTestPremium(t, api, nil)

	m.Update(enter)
	m.Update(runes("1"))
	m.Update(run(m.Update(enter)))

	text, isErr := m.Notice()
	assert.Equal(t, "Sign in required", text)
	assert.True(t, isErr)
	assert.Empty(t, api.paid)
}

func TestPremium_MethodKeysCycle(t *testing.T) {
	m, _ := newTestPremium(t, nil, nil)
	m.Update(enter)

	m.Update(runes("j"))
	assert.Equal(t, messenger.PaymentOptions[0].Method, m.Checkout().Method())
	m.Update(runes("j"))
	assert.Equal(t, messenger.PaymentOptions[1].Method, m.Checkout().Method())
	m.Update(runes("k"))
	assert.Equal(t, messenger.PaymentOptions[0].Method, m.Checkout().Method())

	m.Update(esc)
	assert.False(t, m.Checkout().IsOpen())
	assert.Empty(t, m.Checkout().Method())
}

func TestPaymentNotice(t *testing.T) {
	n := paymentNotice(&client.PaymentResult{Message: "Premium until May"}, nil)
	assert.Equal(t, "Premium until May", n.text)
	assert.False(t, n.isErr)

	n = paymentNotice(nil, errors.New("boom"))
	assert.Equal(t, "Payment failed", n.text)
	assert.True(t, n.isErr)

	n = paymentNotice(nil, client.ErrUnreachable)
	assert.Equal(t, "Could not connect to the server", n.text)
}
