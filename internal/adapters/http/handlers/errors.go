package handlers

import (
	"errors"
	"strings"

	"github.com/JUST9N1/Security-Backend/internal/adapters/http/middleware"
	"github.com/JUST9N1/Security-Backend/internal/core/auth"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// respondError maps domain errors onto HTTP responses. Anything unexpected
// is logged and answered with fallback so internals never leak.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var locked *domain.AccountLockedError
	var invalid *domain.InvalidCredentialsError

	switch {
	case errors.As(err, &locked):
		return response.ErrorWith(c, fiber.StatusForbidden,
			"Account is locked. Please try again later",
			fiber.Map{"remainingTime": locked.RemainingSeconds()})
	case errors.As(err, &invalid):
		return response.ErrorWith(c, fiber.StatusBadRequest,
			"Invalid credentials",
			fiber.Map{"remainingAttempts": invalid.RemainingAttempts})
	case errors.Is(err, domain.ErrDuplicateAccount):
		return response.BadRequest(c, "User already exists")
	case errors.Is(err, domain.ErrAccountNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, inputMessage(err))
	case errors.Is(err, domain.ErrInvalidOTP):
		return response.BadRequest(c, "Invalid OTP")
	case errors.Is(err, domain.ErrOTPExpired):
		return response.BadRequest(c, "OTP expired")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Access denied! You do not have permission")
	case errors.Is(err, domain.ErrDeliveryFailed):
		return response.InternalServerError(c, "Failed to send OTP")
	case errors.Is(err, domain.ErrPaymentFailed):
		return response.InternalServerError(c, "Error creating checkout session")
	}

	log.Errorf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, fallback)
}

// inputMessage drops the sentinel prefix from a validation error
func inputMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return msg
}

// identity returns the authenticated caller; routes guarantee it exists
func identity(c *fiber.Ctx) auth.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}

// canActOn reports whether the caller may act on account id: itself, or any account for admins
func canActOn(c *fiber.Ctx, id string) bool {
	caller := identity(c)
	return caller.AccountID == id || caller.Role == domain.RoleAdmin
}
