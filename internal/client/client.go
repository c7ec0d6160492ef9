package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/n0ko/wix-tui/internal/config"
	"github.com/n0ko/wix-tui/internal/store"
)

// PremiumAmount is the fixed subscription price sent with every payment
const PremiumAmount = 299

// PaymentMethod is one of the two supported payment options
type PaymentMethod string

const (
	PaymentSBP  PaymentMethod = "sbp"
	PaymentCard PaymentMethod = "card"
)

// RegisterRequest is the body of the register action
type RegisterRequest struct {
	Action   string `json:"action"`
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Action string `json:"action"`
	Phone  string `json:"phone"`
}

type authResponse struct {
	Success bool        `json:"success"`
	User    *store.User `json:"user"`
	Error   string      `json:"error"`
}

// PaymentRequest is the body sent to the payment endpoint
type PaymentRequest struct {
	UserID        int64         `json:"user_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Amount        int           `json:"amount"`
}

// PaymentResult is a successful payment response
type PaymentResult struct {
	Success          bool   `json:"success"`
	PaymentID        int64  `json:"payment_id"`
	TransactionID    string `json:"transaction_id"`
	Status           string `json:"status"`
	PremiumExpiresAt string `json:"premium_expires_at"`
	Message          string `json:"message"`
	Error            string `json:"error"`
}

// Client talks to the registration and payment endpoints.
// Calls never retry; cancellation belongs to the caller's context.
type Client struct {
	http       *http.Client
	authURL    string
	paymentURL string
}

// New creates a new Client for the configured endpoints
func New(cfg config.EndpointsConfig) *Client {
	return &Client{
		http:       &http.Client{Timeout: cfg.RequestTimeout},
		authURL:    cfg.AuthURL,
		paymentURL: cfg.PaymentURL,
	}
}

// Register creates an account and returns the stored user object
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*store.User, error) {
	req.Action = "register"
	return c.authenticate(ctx, req)
}

// Login fetches an existing account by phone
func (c *Client) Login(ctx context.Context, phone string) (*store.User, error) {
	return c.authenticate(ctx, loginRequest{Action: "login", Phone: phone})
}

func (c *Client) authenticate(ctx context.Context, body any) (*store.User, error) {
	var resp authResponse
	status, err := c.post(ctx, c.authURL, body, &resp)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) || !resp.Success {
		return nil, &RemoteError{Status: status, Message: resp.Error}
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: success without user", ErrMalformedResponse)
	}
	return resp.User, nil
}

// Pay charges the subscription for req.UserID
func (c *Client) Pay(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	var resp PaymentResult
	status, err := c.post(ctx, c.paymentURL, req, &resp)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) || !resp.Success {
		return nil, &RemoteError{Status: status, Message: resp.Error}
	}
	return &resp, nil
}

// post sends body as JSON and decodes the JSON reply into out
func (c *Client) post(ctx context.Context, url string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("client: request failed")
		return 0, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Int("status", resp.StatusCode).Msg("client: malformed response body")
		return resp.StatusCode, fmt.Errorf("%w (status %d): %w", ErrMalformedResponse, resp.StatusCode, err)
	}

	log.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("client: response received")
	return resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
