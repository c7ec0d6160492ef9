package messenger

import (
	"github.com/n0ko/wix-tui/internal/store"
)

const (
	// AssistantGreeting seeds every transcript
	AssistantGreeting = "Hi! I'm Got, your AI assistant in wix. How can I help?"
	// AssistantReply is the only thing Got ever answers
	AssistantReply = "This is a demo version of Got. Soon I'll help with translations, finding information and much more!"
)

// Assistant is the Got transcript. Replies are scripted: one fixed reply
// per user message, whatever it says.
type Assistant struct {
	messages []store.AssistantMessage
	clock    Clock
}

// NewAssistant creates a transcript holding the greeting
func NewAssistant(clock Clock) *Assistant {
	a := &Assistant{clock: clock}
	a.append(store.AssistantSenderGot, AssistantGreeting)
	return a
}

// Messages returns the transcript oldest first
func (a *Assistant) Messages() []store.AssistantMessage {
	return a.messages
}

// Send echoes a non-blank user message into the transcript. The caller
// schedules the reply.
func (a *Assistant) Send(text string) (store.AssistantMessage, bool) {
	if !CanSend(text) {
		return store.AssistantMessage{}, false
	}
	return a.append(store.AssistantSenderUser, text), true
}

// Reply appends the fixed assistant reply
func (a *Assistant) Reply() store.AssistantMessage {
	return a.append(store.AssistantSenderGot, AssistantReply)
}

func (a *Assistant) append(sender store.AssistantSender, text string) store.AssistantMessage {
	msg := store.AssistantMessage{
		ID:     store.NewID(),
		Text:   text,
		Sender: sender,
		Time:   store.FormatClock(a.clock.now()),
	}
	a.messages = append(a.messages, msg)
	return msg
}
