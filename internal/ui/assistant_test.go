package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/messenger"
	"github.com/n0ko/wix-tui/internal/store"
)

func TestAssistant_GreetsOnMount(t *testing.T) {
	m := NewAssistantModel(newTestDeps(t, nil), newTestMount(t))

	msgs := m.Transcript()
	require.Len(t, msgs, 1)
	assert.Equal(t, messenger.AssistantGreeting, msgs[0].Text)
	assert.True(t, m.Capturing())
}

func TestAssistant_ReplyArrivesAfterDelay(t *testing.T) {
	m := NewAssistantModel(newTestDeps(t, nil), newTestMount(t))
	m.SetSize(80, 30)
	m.Init()

	m.Update(runes("hello"))
	submit := run(m.Update(enter))
	require.Equal(t, SubmitMsg{Content: "hello"}, submit)
	assert.Empty(t, m.input.Value())

	reply := m.Update(submit)
	require.NotNil(t, reply)
	assert.Equal(t, 1, m.Pending())
	assert.Len(t, m.Transcript(), 2)
	assert.Contains(t, m.View(), "Got is typing...")

	m.Update(reply())
	msgs := m.Transcript()
	require.Len(t, msgs, 3)
	assert.Equal(t, store.AssistantSenderUser, msgs[1].Sender)
	assert.Equal(t, "hello", msgs[1].Text)
	assert.Equal(t, "12:05", msgs[1].Time)
	assert.Equal(t, messenger.AssistantReply, msgs[2].Text)
	assert.Equal(t, 0, m.Pending())
}

func TestAssistant_BlankInputIgnored(t *testing.T) {
	m := NewAssistantModel(newTestDeps(t, nil), newTestMount(t))
	m.Init()

	m.Update(runes("   "))
	assert.Nil(t, m.Update(enter))
	assert.Equal(t, "   ", m.input.Value())
	assert.Nil(t, m.Update(SubmitMsg{Content: "  "}))
	assert.Len(t, m.Transcript(), 1)
}

func TestAfter_DeliversMessage(t *testing.T) {
	cmd := After(context.Background(), time.Millisecond, func() tea.Msg { return "done" })
	assert.Equal(t, "done", cmd())
}

func TestAfter_CancelledDeliversNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	cmd := After(ctx, time.Hour, func() tea.Msg {
		called = true
		return "done"
	})
	assert.Nil(t, cmd())
	assert.False(t, called)
}
