package messenger

import (
	"strings"

	"github.com/n0ko/wix-tui/internal/store"
)

// VoiceDuration is the fixed length shown for every voice message
const VoiceDuration = "0:12"

// Thread is the message sequence of one open chat, oldest first. Messages
// live only as long as the thread.
type Thread struct {
	chat     store.Chat
	messages []store.Message
	clock    Clock
}

// NewThread creates an empty thread for chat
func NewThread(chat store.Chat, clock Clock) *Thread {
	return &Thread{chat: chat, clock: clock}
}

// Chat returns the chat this thread belongs to
func (t *Thread) Chat() store.Chat {
	return t.chat
}

// Messages returns the messages oldest first
func (t *Thread) Messages() []store.Message {
	return t.messages
}

// CanSend reports whether a text send of text would append a message
func CanSend(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Send appends a message from self. Text sends require non-blank text and
// keep it as typed; other kinds store their placeholder tag and ignore text.
// ok is false when nothing was appended.
func (t *Thread) Send(kind store.MessageKind, text string) (store.Message, bool) {
	if kind == "" {
		kind = store.KindText
	}
	if kind == store.KindText {
		if !CanSend(text) {
			return store.Message{}, false
		}
	} else {
		text = kind.Placeholder()
	}

	msg := store.Message{
		ID:     store.NewID(),
		Text:   text,
		Sender: store.SenderSelf,
		Time:   store.FormatClock(t.clock.now()),
		Kind:   kind,
	}
	t.messages = append(t.messages, msg)
	return msg, true
}

// Body returns the rendered body of msg. Non-text kinds render fixed
// placeholders regardless of content.
func Body(msg store.Message) string {
	switch msg.Kind {
	case store.KindVoice:
		return "🎤 ▬▬▬▬▬▬ " + VoiceDuration
	case store.KindLocation:
		return "📍 Location"
	case store.KindMusic:
		return "🎵 Audio file"
	default:
		return msg.Text
	}
}
