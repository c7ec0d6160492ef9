package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBox_Editing(t *testing.T) {
	s := searchBox{active: true}

	assert.True(t, s.handle(runes("an")))
	assert.True(t, s.handle(keyOf(tea.KeySpace)))
	assert.True(t, s.handle(runes("смит")))
	assert.Equal(t, "an смит", s.query)

	assert.True(t, s.handle(keyOf(tea.KeyBackspace)))
	assert.Equal(t, "an сми", s.query)

	assert.True(t, s.handle(keyOf(tea.KeyCtrlW)))
	assert.Equal(t, "an ", s.query)

	assert.True(t, s.handle(keyOf(tea.KeyCtrlU)))
	assert.Equal(t, "", s.query)
	assert.False(t, s.handle(keyOf(tea.KeyBackspace)))
}

func TestSearchBox_EnterKeepsEscClears(t *testing.T) {
	s := searchBox{active: true, query: "bob"}

	assert.False(t, s.handle(enter))
	assert.False(t, s.active)
	assert.Equal(t, "bob", s.query)

	s.active = true
	assert.True(t, s.handle(esc))
	assert.False(t, s.active)
	assert.Empty(t, s.query)
}

func TestDeleteWordBackward(t *testing.T) {
	assert.Equal(t, "", deleteWordBackward(""))
	assert.Equal(t, "hello ", deleteWordBackward("hello world"))
	assert.Equal(t, "hello ", deleteWordBackward("hello world  "))
	assert.Equal(t, "", deleteWordBackward("hello"))
}

func TestInput_UnfocusedIgnoresKeys(t *testing.T) {
	in := NewInputModel(DefaultStyles(), "type", "")

	in, cmd := in.Update(runes("hi"))
	assert.Nil(t, cmd)
	assert.Empty(t, in.Value())
}

func TestInput_EnterSubmitsAndResets(t *testing.T) {
	in := NewInputModel(DefaultStyles(), "type", "")
	in.SetFocused(true)

	in, _ = in.Update(runes("hi there"))
	in, cmd := in.Update(enter)

	assert.Equal(t, SubmitMsg{Content: "hi there"}, run(cmd))
	assert.Empty(t, in.Value())
}

func TestInput_EditorKeyNeedsRecipient(t *testing.T) {
	in := NewInputModel(DefaultStyles(), "type", "")
	in.SetFocused(true)

	_, cmd := in.Update(keyOf(tea.KeyCtrlE))
	_, isEditor := run(cmd).(OpenEditorMsg)
	assert.False(t, isEditor)
}

func TestInput_EditorDraftIgnoresTyping(t *testing.T) {
	in := NewInputModel(DefaultStyles(), "type", "Anna")
	in.SetFocused(true)
	in.SetValue("a\nb\nc")
	assert.Equal(t, "a\nb\nc", in.Content())
	assert.Equal(t, "a [+2 lines]", in.Value())

	in, _ = in.Update(runes("x"))
	in, _ = in.Update(keyOf(tea.KeyBackspace))
	assert.Equal(t, "a [+2 lines]", in.Value())

	_, cmd := in.Update(enter)
	msg, ok := run(cmd).(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "a\nb\nc", msg.Content)
	assert.NotContains(t, msg.Content, "[+2 lines]")
}

func TestInput_ClearDropsEditorDraft(t *testing.T) {
	in := NewInputModel(DefaultStyles(), "type", "Anna")
	in.SetFocused(true)
	in.SetValue("a\nb")

	in, _ = in.Update(keyOf(tea.KeyCtrlU))
	assert.Empty(t, in.Value())
	assert.Empty(t, in.Content())

	in, _ = in.Update(runes("x"))
	assert.Equal(t, "x", in.Content())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "h...", Truncate("hello", 4))
	assert.Equal(t, "", Truncate("hello", 0))
}
