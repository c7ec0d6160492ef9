// Package messenger holds the view state of the wix screens independently of
// rendering: the registration wizard, chat list and thread, contact book,
// assistant transcript, settings switches and premium checkout.
//
// Every type here is owned by exactly one view and is not safe for
// concurrent use. Remote work (Register, Pay) is plain functions so callers
// can run them off the UI loop and decide what to do with the result.
package messenger

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/n0ko/wix-tui/internal/store"
)

var (
	ErrWrongStage            = errors.New("action not allowed at this stage")
	ErrPhoneTooShort         = errors.New("phone number must have at least 10 characters")
	ErrCodeLength            = errors.New("verification code must have 4 digits")
	ErrCodeMismatch          = errors.New("invalid code")
	ErrCredentialsIncomplete = errors.New("password, nickname and username are required")
	ErrNoAvatar              = errors.New("select an avatar")
	ErrContactInvalid        = errors.New("contact needs a name and a phone")
	ErrContactNotFound       = errors.New("contact not found")
	ErrNotSignedIn           = errors.New("sign in required")
	ErrNoPaymentMethod       = errors.New("select a payment method")
)

var validate = validator.New()

// Clock returns the current time; tests pin it
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Sessions is the local persistence the remote operations read and write
type Sessions interface {
	LoadUser() (*store.User, error)
	SaveUser(user *store.User) error
}
