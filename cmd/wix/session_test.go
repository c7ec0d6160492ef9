package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/store"
)

func TestRenderUser(t *testing.T) {
	var buf bytes.Buffer
	renderUser(&buf, &store.User{
		ID:        7,
		Phone:     "+79991234567",
		Nickname:  "Anna",
		Username:  "anna",
		Avatar:    "😎",
		IsPremium: true,
	})

	out := buf.String()
	assert.Contains(t, out, "+79991234567")
	assert.Contains(t, out, "@anna")
	assert.Contains(t, out, "wix://user/anna")
	assert.Contains(t, out, "yes")
}

func TestRenderUser_ImageAvatarShowsTag(t *testing.T) {
	var buf bytes.Buffer
	renderUser(&buf, &store.User{Username: "bob", Avatar: "data:image/png;base64,AAAA"})
	assert.Contains(t, buf.String(), "[photo]")
	assert.Contains(t, buf.String(), "no")
}

func TestLoginRequiresPhone(t *testing.T) {
	flag := loginCmd.Flags().Lookup("phone")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit := version, commit
	defer func() { version, commit = origVersion, origCommit }()

	version, commit = "1.2.0", "none"
	assert.Equal(t, "wix 1.2.0\n", versionTemplate())

	commit = "abc123"
	assert.Equal(t, "wix 1.2.0\n  commit: abc123\n", versionTemplate())
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, versionTemplate(), buf.String())
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["login"])
	assert.True(t, names["logout"])
	assert.True(t, names["whoami"])
	assert.True(t, names["version"])
	assert.True(t, names["config"])
}
