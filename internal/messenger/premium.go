package messenger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/client"
)

// Feature is one entry of the premium feature list
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// PremiumFeatures is the static premium feature list
var PremiumFeatures = []Feature{
	{Icon: "✨", Title: "Enhanced statuses", Description: "More ways to customize your status"},
	{Icon: "🎨", Title: "Themes", Description: "Exclusive themes and color schemes"},
	{Icon: "⚡", Title: "Faster delivery", Description: "Priority message delivery"},
	{Icon: "🛡", Title: "Extended privacy", Description: "Additional security settings"},
	{Icon: "☁", Title: "More storage", Description: "Up to 10 GB for files and media"},
	{Icon: "👥", Title: "Large groups", Description: "Groups of up to 10,000 members"},
}

// PaymentOption describes a selectable payment method
type PaymentOption struct {
	Method      client.PaymentMethod
	Title       string
	Description string
}

// PaymentOptions are offered in this order
var PaymentOptions = []PaymentOption{
	{Method: client.PaymentSBP, Title: "SBP", Description: "Instant transfer via the Faster Payments System"},
	{Method: client.PaymentCard, Title: "Bank card", Description: "Visa, MasterCard, MIR"},
}

type paymentForm struct {
	Method client.PaymentMethod `validate:"oneof=sbp card"`
}

// Checkout is the premium payment dialog state
type Checkout struct {
	open    bool
	method  client.PaymentMethod
	pending bool
}

// Open shows the payment dialog
func (c *Checkout) Open() {
	c.open = true
}

// IsOpen reports whether the dialog is showing
func (c *Checkout) IsOpen() bool {
	return c.open
}

// Choose selects the payment method
func (c *Checkout) Choose(m client.PaymentMethod) error {
	if validate.Struct(paymentForm{Method: m}) != nil {
		return fmt.Errorf("unknown payment method %q", m)
	}
	c.method = m
	return nil
}

// Method returns the chosen method, "" if none
func (c *Checkout) Method() client.PaymentMethod {
	return c.method
}

// Pending reports whether a payment request is in flight
func (c *Checkout) Pending() bool {
	return c.pending
}

// Begin marks a payment as in flight; it fails without a chosen method or
// while another payment is pending
func (c *Checkout) Begin() (client.PaymentMethod, error) {
	if c.method == "" {
		return "", ErrNoPaymentMethod
	}
	if c.pending {
		return "", ErrWrongStage
	}
	c.pending = true
	return c.method, nil
}

// Finish closes the dialog and resets the method, whatever the outcome
func (c *Checkout) Finish() {
	c.pending = false
	c.Close()
}

// Close hides the dialog and forgets the chosen method
func (c *Checkout) Close() {
	c.open = false
	c.method = ""
}

// Payer is the payment endpoint
type Payer interface {
	Pay(ctx context.Context, req client.PaymentRequest) (*client.PaymentResult, error)
}

// Pay reads the stored user, charges PremiumAmount with method and marks
// the stored user premium on success. ErrNotSignedIn is returned without a
// request when no stored user has an id.
func Pay(ctx context.Context, api Payer, sessions Sessions, method client.PaymentMethod) (*client.PaymentResult, error) {
	user, err := sessions.LoadUser()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if user == nil || user.ID == 0 {
		return nil, ErrNotSignedIn
	}

	res, err := api.Pay(ctx, client.PaymentRequest{
		UserID:        user.ID,
		PaymentMethod: method,
		Amount:        client.PremiumAmount,
	})
	if err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("premium: payment failed")
		return nil, err
	}

	user.IsPremium = true
	if err := sessions.SaveUser(user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	log.Info().Int64("user_id", user.ID).Str("transaction_id", res.TransactionID).Msg("premium: activated")
	return res, nil
}
