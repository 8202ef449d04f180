package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/http/middleware"
	"github.com/JUST9N1/Security-Backend/internal/adapters/session"
	"github.com/JUST9N1/Security-Backend/internal/config"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// SessionStore creates and revokes cookie sessions
type SessionStore interface {
	Create(ctx context.Context, accountID string, role domain.Role) (string, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAllForAccount(ctx context.Context, accountID string) error
	TTL() time.Duration
}

// SessionHandler handles first-party cookie sessions
type SessionHandler struct {
	authService *services.AuthService
	accounts    *services.AccountService
	store       SessionStore
	cookie      config.CookieConfig
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	authService *services.AuthService,
	accounts *services.AccountService,
	store SessionStore,
	cookie config.CookieConfig,
) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		accounts:    accounts,
		store:       store,
		cookie:      cookie,
	}
}

// Login authenticates with the lockout rules of /auth/login and sets a session cookie
// @Summary Cookie login
// @Tags Session
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /session [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Failed to login")
	}

	sid, err := h.store.Create(c.UserContext(), result.Account.ID, result.Role)
	if err != nil {
		log.Errorf("❌ session create for %s failed: %v", result.Account.ID, err)
		return response.InternalServerError(c, "Failed to create session")
	}

	c.Cookie(h.newCookie(sid, h.store.TTL()))
	return response.SuccessWith(c, "Successfully logged in", result.Account, fiber.Map{
		"role": result.Role,
	})
}

// Me returns the profile behind the current session
// @Summary Session profile
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /session/me [get]
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	caller := identity(c)
	kind, ok := domain.KindForRole(caller.Role)
	if !ok {
		return response.Forbidden(c, "Unauthorized access")
	}

	profile, err := h.accounts.Get(c.UserContext(), kind, caller.AccountID)
	if err != nil {
		return respondError(c, err, "Failed to fetch profile")
	}
	return response.SuccessWith(c, "Session is active", profile, fiber.Map{"role": caller.Role})
}

// Logout revokes the current session
// @Summary Cookie logout
// @Tags Session
// @Success 200 {object} response.Response
// @Router /session [delete]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(middleware.SessionCookie); sid != "" {
		if err := h.store.Delete(c.UserContext(), sid); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			log.Errorf("❌ session delete failed: %v", err)
			return response.InternalServerError(c, "Failed to logout")
		}
	}

	c.Cookie(h.newCookie("", -time.Hour))
	return response.Success(c, "Logged out", nil)
}

// LogoutAll revokes every session of the current account
// @Summary Cookie logout everywhere
// @Tags Session
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /session/all [delete]
func (h *SessionHandler) LogoutAll(c *fiber.Ctx) error {
	caller := identity(c)
	if err := h.store.DeleteAllForAccount(c.UserContext(), caller.AccountID); err != nil {
		log.Errorf("❌ session revoke for %s failed: %v", caller.AccountID, err)
		return response.InternalServerError(c, "Failed to logout")
	}

	c.Cookie(h.newCookie("", -time.Hour))
	return response.Success(c, "Logged out from all devices", nil)
}

func (h *SessionHandler) newCookie(value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	}
}
