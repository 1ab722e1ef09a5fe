package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// MaxResponseBytes caps how much of a provider response is read.
const MaxResponseBytes = 1 << 20

// IntentRequest describes a payment to authorize. Amount is in major units.
type IntentRequest struct {
	Amount    decimal.Decimal
	Currency  string
	Email     string
	FirstName string
	LastName  string
}

// Intent is the provider's answer: an id and the opaque client secret the
// storefront hands to the card form.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// Provider creates payment intents.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// Error is a request the provider answered with an API error, such as a
// declined card or an invalid amount.
type Error struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment provider: %s", e.Message)
}

// Client creates Stripe payment intents.
type Client struct {
	intents paymentintent.Client
	log     *zap.Logger
}

// NewClient creates a Stripe client. An empty baseURL means the public Stripe
// API. Network retries are left to the caller.
func NewClient(baseURL, secretKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cfg := &stripe.BackendConfig{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: limitedBodyTransport{base: http.DefaultTransport, limit: MaxResponseBytes},
		},
		LeveledLogger:     logger.Sugar(),
		MaxNetworkRetries: stripe.Int64(0),
		EnableTelemetry:   stripe.Bool(false),
	}
	if baseURL = strings.TrimRight(baseURL, "/"); baseURL != "" {
		cfg.URL = stripe.String(baseURL)
	}

	return &Client{
		intents: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Key: secretKey,
		},
		log: logger,
	}
}

// MinorUnits converts a major-unit amount to the integer minor units the
// provider expects, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CreateIntent creates a payment intent for the amount. The customer's email
// and name travel as metadata.
func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(req.Amount)),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	params.AddMetadata("email", req.Email)
	params.AddMetadata("name", strings.TrimSpace(req.FirstName+" "+req.LastName))

	pi, err := c.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			c.log.Warn("Payment intent rejected",
				zap.Int("status_code", stripeErr.HTTPStatusCode),
				zap.String("type", string(stripeErr.Type)),
				zap.String("code", string(stripeErr.Code)),
				zap.String("message", stripeErr.Msg))
			return nil, &Error{
				StatusCode: stripeErr.HTTPStatusCode,
				Type:       string(stripeErr.Type),
				Code:       string(stripeErr.Code),
				Message:    stripeErr.Msg,
			}
		}
		c.log.Error("Payment intent request failed", zap.Error(err))
		return nil, fmt.Errorf("payment intent request: %w", err)
	}
	if pi.ClientSecret == "" {
		return nil, fmt.Errorf("payment provider: response has no client secret")
	}

	c.log.Info("Payment intent created", zap.String("intent_id", pi.ID))
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// limitedBodyTransport truncates response bodies at limit bytes.
type limitedBodyTransport struct {
	base  http.RoundTripper
	limit int64
}

func (t limitedBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = limitedBody{Reader: io.LimitReader(resp.Body, t.limit), Closer: resp.Body}
	return resp, nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}
