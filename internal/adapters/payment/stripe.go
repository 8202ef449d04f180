package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// DefaultBaseURL is the Stripe REST endpoint
const DefaultBaseURL = "https://api.stripe.com"

// DefaultTimeout bounds a single Stripe call
const DefaultTimeout = 15 * time.Second

// ErrNotConfigured is returned when no secret key is set
var ErrNotConfigured = errors.New("payment provider not configured")

// StripeProvider creates Stripe Checkout sessions over the REST API
type StripeProvider struct {
	baseURL   string
	secretKey string
	timeout   time.Duration
}

// NewStripeProvider creates a Stripe provider
func NewStripeProvider(baseURL, secretKey string, timeout time.Duration) *StripeProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &StripeProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		timeout:   timeout,
	}
}

type checkoutSession struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession opens a one-item card payment session
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req services.CheckoutRequest) (*domain.PaymentSession, error) {
	if p.secretKey == "" {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("payment_method_types[0]", "card")
	args.Set("mode", "payment")
	args.Set("success_url", req.SuccessURL)
	args.Set("cancel_url", req.CancelURL)
	args.Set("customer_email", req.CustomerEmail)
	args.Set("client_reference_id", req.ReferenceID)
	args.Set("line_items[0][quantity]", "1")
	args.Set("line_items[0][price_data][currency]", req.Currency)
	args.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	args.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	if req.Description != "" {
		args.Set("line_items[0][price_data][product_data][description]", req.Description)
	}
	if req.ImageURL != "" {
		args.Set("line_items[0][price_data][product_data][images][0]", req.ImageURL)
	}

	agent := fiber.Post(p.baseURL + "/v1/checkout/sessions")
	agent.Timeout(p.timeout)
	agent.BasicAuth(p.secretKey, "")
	agent.Form(args)

	var out checkoutSession
	status, _, errs := agent.Struct(&out)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if status != fiber.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("stripe returned %d: %s", status, out.Error.Message)
		}
		return nil, fmt.Errorf("stripe returned %d", status)
	}
	if out.ID == "" {
		return nil, errors.New("stripe returned no session id")
	}

	return &domain.PaymentSession{ID: out.ID, URL: out.URL}, nil
}
