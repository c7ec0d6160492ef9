package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

func newTestRegistration(t *testing.T, api *fakeAPI) (*RegistrationModel, deps) {
	t.Helper()
	d := newTestDeps(t, api)
	m := NewRegistrationModel(context.Background(), d, fixedCodes("4821"))
	m.SetSize(80, 40)
	m.Init()
	return m, d
}

func toAvatarStage(t *testing.T, m *RegistrationModel) {
	t.Helper()
	m.Update(runes("9991234567"))
	m.Update(enter)
	require.Equal(t, messenger.StageCode, m.Wizard().Stage())

	m.Update(runes("4821"))
	m.Update(enter)
	require.Equal(t, messenger.StageCredentials, m.Wizard().Stage())

	m.Update(runes("secret"))
	m.Update(enter)
	m.Update(runes("Neo"))
	m.Update(enter)
	m.Update(runes("neo"))
	m.Update(enter)
	require.Equal(t, messenger.StageAvatar, m.Wizard().Stage())
}

func TestRegistration_ShortPhoneDoesNothing(t *testing.T) {
	m, _ := newTestRegistration(t, nil)

	m.Update(runes("123456789"))
	m.Update(enter)

	assert.Equal(t, messenger.StagePhone, m.Wizard().Stage())
	assert.Empty(t, m.Notice())
}

func TestRegistration_PhoneShowsCode(t *testing.T) {
	m, _ := newTestRegistration(t, nil)

	m.Update(runes("9991234567"))
	m.Update(enter)

	assert.Equal(t, messenger.StageCode, m.Wizard().Stage())
	assert.Equal(t, "Verification code for 9991234567: 4821", m.Notice())
}

func TestRegistration_WrongCodeAlertsThenRightCodeAdvances(t *testing.T) {
	m, _ := newTestRegistration(t, nil)
	m.Update(runes("9991234567"))
	m.Update(enter)

	m.Update(runes("1111"))
	m.Update(enter)
	assert.Equal(t, "Invalid code", m.Alert())
	assert.Equal(t, messenger.StageCode, m.Wizard().Stage())

	// Any key dismisses the alert and is swallowed
	m.Update(runes("9"))
	assert.Empty(t, m.Alert())
	assert.Equal(t, "1111", m.code.Value())

	m.Update(keyOf(tea.KeyCtrlU))
	m.Update(runes("4821"))
	m.Update(enter)
	assert.Equal(t, messenger.StageCredentials, m.Wizard().Stage())
	assert.Empty(t, m.Notice())
}

func TestRegistration_ShortCodeIsIgnored(t *testing.T) {
	m, _ := newTestRegistration(t, nil)
	m.Update(runes("9991234567"))
	m.Update(enter)

	m.Update(runes("48"))
	m.Update(enter)

	assert.Empty(t, m.Alert())
	assert.Equal(t, messenger.StageCode, m.Wizard().Stage())
}

func TestRegistration_EnterWalksCredentialFields(t *testing.T) {
	m, _ := newTestRegistration(t, nil)
	m.Update(runes("9991234567"))
	m.Update(enter)
	m.Update(runes("4821"))
	m.Update(enter)

	m.Update(runes("secret"))
	m.Update(enter)
	assert.Equal(t, credNickname, m.credFocus)
	assert.Equal(t, messenger.StageCredentials, m.Wizard().Stage())

	m.Update(enter)
	assert.Equal(t, credUsername, m.credFocus)

	// Last field empty: nothing happens
	m.Update(enter)
	assert.Equal(t, messenger.StageCredentials, m.Wizard().Stage())
}

func TestRegistration_FinishNeedsAvatar(t *testing.T) {
	api := &fakeAPI{user: &store.User{ID: 1}}
	m, _ := newTestRegistration(t, api)
	toAvatarStage(t, m)

	assert.Nil(t, m.Update(enter))
	assert.False(t, m.Pending())
	assert.Empty(t, api.registered)
}

func TestRegistration_RegistersAndEmitsRegisteredMsg(t *testing.T) {
	api := &fakeAPI{user: &store.User{ID: 42, Phone: "9991234567", Nickname: "Neo", Username: "neo", Avatar: "😀"}}
	m, d := newTestRegistration(t, api)
	toAvatarStage(t, m)

	m.Update(keyOf(tea.KeyRight))
	assert.Equal(t, messenger.AvatarEmojis[0], m.Wizard().Avatar())
	m.Update(keyOf(tea.KeyLeft))
	assert.Equal(t, messenger.AvatarEmojis[len(messenger.AvatarEmojis)-1], m.Wizard().Avatar())
	m.Update(keyOf(tea.KeyRight))

	cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, m.Pending())

	// Keys are ignored while the request is in flight
	m.Update(keyOf(tea.KeyRight))
	assert.Equal(t, messenger.AvatarEmojis[0], m.Wizard().Avatar())

	done := m.Update(run(cmd))
	require.NotNil(t, done)
	msg, ok := done().(RegisteredMsg)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.User.ID)
	assert.Equal(t, store.UserProfile{Phone: "9991234567", Nickname: "Neo", Username: "neo", Avatar: messenger.AvatarEmojis[0]}, msg.Profile)
	assert.False(t, m.Pending())

	require.Len(t, api.registered, 1)
	assert.Equal(t, client.RegisterRequest{
		Action:   "register",
		Phone:    "9991234567",
		Nickname: "Neo",
		Username: "neo",
		Avatar:   messenger.AvatarEmojis[0],
	}, api.registered[0])

	stored, err := d.sessions.LoadUser()
	require.NoError(t, err)
	assert.Equal(t, api.user, stored)
}

func TestRegistration_FailureShowsServerMessage(t *testing.T) {
	api := &fakeAPI{registerErr: &client.RemoteError{Status: 409, Message: "Phone already registered"}}
	m, d := newTestRegistration(t, api)
	toAvatarStage(t, m)
	m.Update(keyOf(tea.KeyRight))

	cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.Nil(t, m.Update(run(cmd)))

	assert.Equal(t, "Phone already registered", m.Alert())
	assert.Equal(t, messenger.StageAvatar, m.Wizard().Stage())
	assert.False(t, m.Pending())

	stored, err := d.sessions.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRegistration_CancelledContextDropsResult(t *testing.T) {
	api := &fakeAPI{user: &store.User{ID: 1}}
	d := newTestDeps(t, api)
	ctx, cancel := context.WithCancel(context.Background())
	m := NewRegistrationModel(ctx, d, fixedCodes("4821"))
	m.Init()
	toAvatarStage(t, m)
	m.Update(keyOf(tea.KeyRight))

	cmd := m.Update(enter)
	require.NotNil(t, cmd)
	cancel()
	assert.Nil(t, cmd())
}

func TestRegistration_CapturingUntilAvatarStage(t *testing.T) {
	m, _ := newTestRegistration(t, nil)
	assert.True(t, m.Capturing())

	toAvatarStage(t, m)
	assert.False(t, m.Capturing())
}

func TestRegistration_ViewShowsStage(t *testing.T) {
	m, _ := newTestRegistration(t, nil)
	assert.Contains(t, m.View(), "Enter your phone number")

	toAvatarStage(t, m)
	assert.Contains(t, m.View(), "Choose an avatar")
}

func TestRegistration_NormalisesInput(t *testing.T) {
	api := &fakeAPI{user: &store.User{ID: 1}}
	m, _ := newTestRegistration(t, api)

	// Nine digits padded past ten characters are still too short
	m.Update(runes("  999123456 "))
	m.Update(enter)
	assert.Equal(t, messenger.StagePhone, m.Wizard().Stage())

	m.Update(keyOf(tea.KeyCtrlU))
	m.Update(runes(" 9991234567 "))
	m.Update(enter)
	require.Equal(t, messenger.StageCode, m.Wizard().Stage())
	assert.Equal(t, "Verification code for 9991234567: 4821", m.Notice())

	m.Update(runes("4821"))
	m.Update(enter)
	m.Update(runes("pw"))
	m.Update(enter)
	m.Update(runes("   "))
	m.Update(enter)
	m.Update(runes("@neo"))
	m.Update(enter)
	// A whitespace-only nickname counts as empty
	assert.Equal(t, messenger.StageCredentials, m.Wizard().Stage())

	m.focusCred(credNickname)
	m.Update(runes("Neo "))
	m.Update(enter)
	m.Update(enter)
	require.Equal(t, messenger.StageAvatar, m.Wizard().Stage())

	m.Update(keyOf(tea.KeyRight))
	cmd := m.Update(enter)
	require.NotNil(t, cmd)
	m.Update(run(cmd))

	require.Len(t, api.registered, 1)
	assert.Equal(t, "9991234567", api.registered[0].Phone)
	assert.Equal(t, "Neo", api.registered[0].Nickname)
	assert.Equal(t, "neo", api.registered[0].Username)
}
