package messenger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0ko/wix-tui/internal/store"
)

var noon = Clock(func() time.Time { return time.Date(2026, 1, 2, 12, 5, 0, 0, time.Local) })

func seedChats() []store.Chat {
	return []store.Chat{
		{ID: "1", Name: "Anna Smith", Avatar: "👩", LastMessage: "See you", Time: "10:30", Unread: 2},
		{ID: "2", Name: "Work", Avatar: "💼", LastMessage: "Deploy done", Time: "09:12"},
		{ID: "3", Name: "Hannah", Avatar: "🌸", Time: "Yesterday"},
	}
}

func TestChatListFilter(t *testing.T) {
	l := NewChatList(seedChats(), noon)

	assert.Len(t, l.Filtered(), 3)

	l.SetQuery("ANN")
	names := []string{}
	for _, c := range l.Filtered() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Anna Smith", "Hannah"}, names)

	l.SetQuery("zzz")
	assert.Empty(t, l.Filtered())
	assert.Equal(t, 3, l.Len())
}

func TestChatListSelectKeepsActiveThread(t *testing.T) {
	l := NewChatList(seedChats(), noon)

	th, ok := l.Select("1")
	require.True(t, ok)
	_, sent := th.Send(store.KindText, "hi")
	require.True(t, sent)

	again, ok := l.Select("1")
	require.True(t, ok)
	assert.Same(t, th, again)
	assert.Len(t, again.Messages(), 1)

	other, ok := l.Select("2")
	require.True(t, ok)
	assert.Empty(t, other.Messages())

	back, _ := l.Select("1")
	assert.Empty(t, back.Messages(), "switching chats discards the previous thread")
}

func TestChatListSelectUnknown(t *testing.T) {
	l := NewChatList(seedChats(), noon)

	_, ok := l.Select("nope")
	assert.False(t, ok)
	assert.Nil(t, l.Active())
}

func TestChatListClearSelection(t *testing.T) {
	l := NewChatList(seedChats(), noon)
	_, _ = l.Select("2")

	l.ClearSelection()
	assert.Nil(t, l.Active())
}

func TestChatListAddFillsID(t *testing.T) {
	l := NewChatList(nil, noon)
	l.Add(store.Chat{Name: "New"})

	require.Equal(t, 1, l.Len())
	assert.NotEmpty(t, l.Filtered()[0].ID)
}

func TestNewChatListFillsSeedIDs(t *testing.T) {
	l := NewChatList([]store.Chat{{ID: "a", Name: "Anna"}, {Name: "Bob"}}, noon)

	chats := l.Filtered()
	require.Len(t, chats, 2)
	assert.Equal(t, "a", chats[0].ID)
	assert.NotEmpty(t, chats[1].ID)
	assert.NotEqual(t, chats[0].ID, chats[1].ID)

	th, ok := l.Select(chats[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Bob", th.Chat().Name)
}

func TestThreadSend(t *testing.T) {
	th := NewThread(seedChats()[0], noon)

	_, ok := th.Send(store.KindText, "   ")
	assert.False(t, ok)
	assert.Empty(t, th.Messages())

	msg, ok := th.Send(store.KindText, "  hello ")
	require.True(t, ok)
	assert.Equal(t, "  hello ", msg.Text)
	assert.Equal(t, store.SenderSelf, msg.Sender)
	assert.Equal(t, "12:05", msg.Time)
	assert.Equal(t, store.KindText, msg.Kind)
}

func TestThreadSendMedia(t *testing.T) {
	th := NewThread(seedChats()[0], noon)

	voice, ok := th.Send(store.KindVoice, "ignored")
	require.True(t, ok)
	assert.Equal(t, "[voice]", voice.Text)
	assert.Equal(t, "🎤 ▬▬▬▬▬▬ 0:12", Body(voice))

	loc, _ := th.Send(store.KindLocation, "")
	assert.Equal(t, "📍 Location", Body(loc))

	music, _ := th.Send(store.KindMusic, "")
	assert.Equal(t, "🎵 Audio file", Body(music))

	msgs := th.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, store.KindVoice, msgs[0].Kind)
	assert.Equal(t, store.KindMusic, msgs[2].Kind)
}
