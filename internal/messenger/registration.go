package messenger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/store"
)

// Stage is one step of the registration wizard
type Stage int

const (
	StagePhone Stage = iota + 1
	StageCode
	StageCredentials
	StageAvatar
	StageDone
)

// StageCount is the number of user-facing stages
const StageCount = 4

func (s Stage) String() string {
	switch s {
	case StagePhone:
		return "phone"
	case StageCode:
		return "code"
	case StageCredentials:
		return "credentials"
	case StageAvatar:
		return "avatar"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// MinPhoneLength is the shortest phone input accepted
const MinPhoneLength = 10

// AvatarEmojis are the built-in avatar choices
var AvatarEmojis = []string{"😀", "😎", "🚀", "💜", "🌟", "🔥", "💎", "🎨", "🎭", "🎪"}

// CodeSource produces verification codes
type CodeSource func() string

// RandomCode returns a random 4-digit code in 1000..9999
func RandomCode() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}

// Credentials are the stage 3 fields
type Credentials struct {
	Password string `validate:"required"`
	Nickname string `validate:"required"`
	Username string `validate:"required"`
}

type phoneForm struct {
	Phone string `validate:"min=10"`
}

type codeForm struct {
	Code string `validate:"len=4,numeric"`
}

// Wizard is the linear four-stage registration flow. There is no way back
// and the verification code never expires.
type Wizard struct {
	stage       Stage
	codes       CodeSource
	phone       string
	sentCode    string
	credentials Credentials
	avatar      string
}

// NewWizard creates a wizard at the phone stage. A nil codes uses RandomCode.
func NewWizard(codes CodeSource) *Wizard {
	if codes == nil {
		codes = RandomCode
	}
	return &Wizard{stage: StagePhone, codes: codes}
}

// Stage returns the current stage
func (w *Wizard) Stage() Stage {
	return w.stage
}

// Phone returns the submitted phone number
func (w *Wizard) Phone() string {
	return w.phone
}

// Avatar returns the selected avatar
func (w *Wizard) Avatar() string {
	return w.avatar
}

// CanSubmitPhone reports whether the phone input would be accepted
func CanSubmitPhone(phone string) bool {
	return validate.Struct(phoneForm{Phone: phone}) == nil
}

// SubmitPhone accepts the phone number and generates a new verification
// code. The code is returned for out-of-band delivery to the user.
func (w *Wizard) SubmitPhone(phone string) (string, error) {
	if w.stage != StagePhone {
		return "", ErrWrongStage
	}
	if !CanSubmitPhone(phone) {
		return "", ErrPhoneTooShort
	}
	w.phone = phone
	w.sentCode = w.codes()
	w.stage = StageCode
	log.Debug().Msg("registration: verification code generated")
	return w.sentCode, nil
}

// CanVerify reports whether code has the shape of a verification code
func CanVerify(code string) bool {
	return validate.Struct(codeForm{Code: code}) == nil
}

// VerifyCode advances to credentials only when code equals the most
// recently generated code. A mismatch keeps the wizard at StageCode.
func (w *Wizard) VerifyCode(code string) error {
	if w.stage != StageCode {
		return ErrWrongStage
	}
	if !CanVerify(code) {
		return ErrCodeLength
	}
	if code != w.sentCode {
		log.Debug().Msg("registration: code mismatch")
		return ErrCodeMismatch
	}
	w.stage = StageCredentials
	return nil
}

// CanSubmitCredentials reports whether all credential fields are filled
func CanSubmitCredentials(c Credentials) bool {
	return validate.Struct(c) == nil
}

// SubmitCredentials stores password, nickname and username
func (w *Wizard) SubmitCredentials(c Credentials) error {
	if w.stage != StageCredentials {
		return ErrWrongStage
	}
	if !CanSubmitCredentials(c) {
		return ErrCredentialsIncomplete
	}
	w.credentials = c
	w.stage = StageAvatar
	return nil
}

// SelectAvatar picks an emoji or image data URL; it may be changed until
// registration completes
func (w *Wizard) SelectAvatar(avatar string) error {
	if w.stage != StageAvatar {
		return ErrWrongStage
	}
	w.avatar = avatar
	return nil
}

// Request builds the outbound registration request
func (w *Wizard) Request() (client.RegisterRequest, error) {
	if w.stage != StageAvatar {
		return client.RegisterRequest{}, ErrWrongStage
	}
	if w.avatar == "" {
		return client.RegisterRequest{}, ErrNoAvatar
	}
	return client.RegisterRequest{
		Action:   "register",
		Phone:    w.phone,
		Nickname: w.credentials.Nickname,
		Username: w.credentials.Username,
		Avatar:   w.avatar,
	}, nil
}

// Complete finishes the wizard after a successful registration and returns
// the composed profile
func (w *Wizard) Complete() (store.UserProfile, error) {
	if w.stage != StageAvatar {
		return store.UserProfile{}, ErrWrongStage
	}
	if w.avatar == "" {
		return store.UserProfile{}, ErrNoAvatar
	}
	w.stage = StageDone
	return store.UserProfile{
		Phone:    w.phone,
		Nickname: w.credentials.Nickname,
		Username: w.credentials.Username,
		Avatar:   w.avatar,
	}, nil
}

// Registrar is the registration endpoint
type Registrar interface {
	Register(ctx context.Context, req client.RegisterRequest) (*store.User, error)
}

// Register issues one registration request and stores the returned user.
// It does not touch any wizard; callers apply the result with Complete.
func Register(ctx context.Context, api Registrar, sessions Sessions, req client.RegisterRequest) (*store.User, error) {
	user, err := api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := sessions.SaveUser(user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	log.Info().Int64("user_id", user.ID).Msg("registration: completed")
	return user, nil
}
