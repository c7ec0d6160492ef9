package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserProfile is the profile composed at the end of registration
type UserProfile struct {
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
	Username string `json:"username"`
	// Avatar is an emoji glyph or a data URL holding image bytes
	Avatar string `json:"avatar"`
}

// User is the session object returned by the auth endpoint and kept in the store
type User struct {
	ID        int64  `json:"id"`
	Phone     string `json:"phone"`
	Nickname  string `json:"nickname"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	IsPremium bool   `json:"is_premium"`
}

// Profile returns the display profile of a stored user
func (u *User) Profile() UserProfile {
	return UserProfile{
		Phone:    u.Phone,
		Nickname: u.Nickname,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

// Chat represents one entry of the chat list
type Chat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	LastMessage string `json:"last_message"`
	Time        string `json:"time"`
	Unread      int    `json:"unread"`
}

// Sender identifies who wrote a chat message
type Sender string

const (
	SenderSelf  Sender = "me"
	SenderOther Sender = "other"
)

// MessageKind distinguishes composed message types
type MessageKind string

const (
	KindText     MessageKind = "text"
	KindVoice    MessageKind = "voice"
	KindLocation MessageKind = "location"
	KindMusic    MessageKind = "music"
)

// Placeholder is the text stored for non-text kinds, e.g. "[voice]"
func (k MessageKind) Placeholder() string {
	return "[" + string(k) + "]"
}

// Message is a chat window message
type Message struct {
	ID     string      `json:"id"`
	Text   string      `json:"text"`
	Sender Sender      `json:"sender"`
	Time   string      `json:"time"`
	Kind   MessageKind `json:"type"`
}

// Contact is an address book entry
type Contact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

// AssistantSender identifies the author of an assistant transcript entry
type AssistantSender string

const (
	AssistantSenderUser AssistantSender = "user"
	AssistantSenderGot  AssistantSender = "got"
)

// AssistantMessage is one entry of the Got transcript
type AssistantMessage struct {
	ID     string          `json:"id"`
	Text   string          `json:"text"`
	Sender AssistantSender `json:"sender"`
	Time   string          `json:"time"`
}

// ClockFormat is the hour:minute layout used for message times
const ClockFormat = "15:04"

// FormatClock formats t as a local hour:minute string
func FormatClock(t time.Time) string {
	return t.Local().Format(ClockFormat)
}

// NewID returns a time-ordered unique id (UUIDv7)
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// IsImageAvatar reports whether avatar holds an embedded image rather than an emoji
func IsImageAvatar(avatar string) bool {
	return strings.HasPrefix(avatar, "data:image/")
}
