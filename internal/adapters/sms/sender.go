package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// DefaultTimeout bounds a single gateway call
const DefaultTimeout = 10 * time.Second

// Sender posts reset codes to an HTTP SMS gateway
type Sender struct {
	url     string
	apiKey  string
	timeout time.Duration
}

// NewSender creates an SMS sender
func NewSender(url, apiKey string, timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Sender{url: url, apiKey: apiKey, timeout: timeout}
}

type sendRequest struct {
	APIKey  string `json:"apiKey"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send delivers the code. It reports false when the gateway answers with
// anything but 200, and an error when the gateway cannot be reached.
func (s *Sender) Send(ctx context.Context, phone, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	agent := fiber.Post(s.url)
	agent.Timeout(s.timeout)
	agent.JSON(sendRequest{
		APIKey:  s.apiKey,
		To:      phone,
		Message: fmt.Sprintf("Your OTP is %s for resetting password", code),
	})

	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return false, errs[0]
	}
	if status != fiber.StatusOK {
		log.Warnf("⚠️ sms gateway returned %d", status)
		return false, nil
	}
	return true, nil
}
