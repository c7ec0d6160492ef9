package messenger

import (
	"strings"

	"github.com/samber/lo"

	"github.com/n0ko/wix-tui/internal/store"
)

// ChatList is the Chats section state: chats, a name filter and the active chat
type ChatList struct {
	chats  []store.Chat
	query  string
	active *Thread
	clock  Clock
}

// NewChatList creates a chat list seeded with chats
func NewChatList(chats []store.Chat, clock Clock) *ChatList {
	l := &ChatList{chats: make([]store.Chat, 0, len(chats)), clock: clock}
	for _, c := range chats {
		l.Add(c)
	}
	return l
}

// Add appends a chat, assigning an id when it has none
func (l *ChatList) Add(chat store.Chat) {
	if chat.ID == "" {
		chat.ID = store.NewID()
	}
	l.chats = append(l.chats, chat)
}

// Len returns the number of chats, ignoring the filter
func (l *ChatList) Len() int {
	return len(l.chats)
}

// SetQuery sets the search filter
func (l *ChatList) SetQuery(q string) {
	l.query = q
}

// Query returns the search filter
func (l *ChatList) Query() string {
	return l.query
}

// Filtered returns chats whose name contains the query, case-insensitively
func (l *ChatList) Filtered() []store.Chat {
	q := strings.ToLower(l.query)
	return lo.Filter(l.chats, func(c store.Chat, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), q)
	})
}

// Select makes the chat with id active and opens a fresh thread for it.
// Selecting the already active chat keeps its thread.
func (l *ChatList) Select(id string) (*Thread, bool) {
	chat, ok := lo.Find(l.chats, func(c store.Chat) bool { return c.ID == id })
	if !ok {
		return nil, false
	}
	if l.active != nil && l.active.Chat().ID == id {
		return l.active, true
	}
	l.active = NewThread(chat, l.clock)
	return l.active, true
}

// Active returns the thread of the selected chat, or nil
func (l *ChatList) Active() *Thread {
	return l.active
}

// ClearSelection closes the active thread; its messages are discarded
func (l *ChatList) ClearSelection() {
	l.active = nil
}
