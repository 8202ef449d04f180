package services

import (
	"context"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
)

// PasswordHasher hashes and checks account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues access tokens for authenticated accounts
type TokenIssuer interface {
	Issue(accountID, role string) (string, error)
}

// OTPSender delivers a password-reset code. A false result with a nil
// error means the gateway refused the message.
type OTPSender interface {
	Send(ctx context.Context, phone, code string) (bool, error)
}

// PaymentProvider opens hosted checkout sessions
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*domain.PaymentSession, error)
}

// CheckoutRequest describes a single-item checkout
type CheckoutRequest struct {
	CustomerEmail string
	ReferenceID   string
	ProductName   string
	Description   string
	ImageURL      string
	AmountCents   int64
	Currency      string
	SuccessURL    string
	CancelURL     string
}
