package middleware

import (
	"context"
	"errors"

	"github.com/JUST9N1/Security-Backend/internal/adapters/session"
	"github.com/JUST9N1/Security-Backend/internal/core/auth"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/pkg/jwt"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type identityKey struct{}

// SessionCookie is the name of the first-party session cookie
const SessionCookie = "sid"

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AccountFinder re-resolves accounts for role checks
type AccountFinder interface {
	FindByID(ctx context.Context, kinds domain.KindSet, id string) (*domain.Account, error)
}

// SessionFinder loads cookie sessions
type SessionFinder interface {
	Get(ctx context.Context, sessionID string) (*session.Session, error)
}

// CurrentIdentity returns the identity attached by Authenticate or RequireSession
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey{}).(auth.Identity)
	return id, ok
}

// SetIdentity attaches an identity to the request
func SetIdentity(c *fiber.Ctx, id auth.Identity) {
	c.Locals(identityKey{}, id)
}

// Authenticate requires a valid bearer token
func Authenticate(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Bearer header
		token, err := jwt.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return response.Unauthorized(c, "Access denied! Unauthorized user")
		}

		// 2. Validate token
		claims, err := tokens.Verify(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Session expired! Please login again")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// 3. Attach identity
		SetIdentity(c, auth.Identity{
			AccountID: claims.AccountID,
			Role:      domain.Role(claims.Role),
		})
		return c.Next()
	}
}

// Restrict allows the request only when the account's stored role is in
// roles. The role carried by the token is not trusted.
func Restrict(accounts AccountFinder, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return response.Unauthorized(c, "Access denied! Unauthorized user")
		}

		acc, err := accounts.FindByID(c.UserContext(), domain.AllKinds, id.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return response.Forbidden(c, "Access denied! You do not have permission")
			}
			log.Errorf("❌ role check for %s failed: %v", id.AccountID, err)
			return response.InternalServerError(c, "Server error while verifying user role")
		}

		current := auth.Identity{AccountID: acc.ID, Role: acc.Role}
		if !current.HasRole(roles...) {
			return response.Forbidden(c, "Access denied! You do not have permission")
		}

		SetIdentity(c, current)
		return c.Next()
	}
}

// RequireSession requires a live cookie session
func RequireSession(store SessionFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c.UserContext(), c.Cookies(SessionCookie))
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				log.Errorf("❌ session lookup failed: %v", err)
				return response.InternalServerError(c, "Server error while loading session")
			}
			return response.Unauthorized(c, "Unauthorized. Please log in.")
		}

		SetIdentity(c, auth.Identity{AccountID: sess.AccountID, Role: sess.Role})
		return c.Next()
	}
}

// RestrictSession is the allow-list role check for session-guarded routes
func RestrictSession(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok || !id.HasRole(roles...) {
			return response.Forbidden(c, "Unauthorized access")
		}
		return c.Next()
	}
}
