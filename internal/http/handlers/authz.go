package handlers

import (
	"github.com/gofiber/fiber/v2"

	"snapbook/internal/domain"
	applog "snapbook/internal/log"
	"snapbook/internal/services"
)

// LoadSession resolves the sid cookie and stores the session in Locals.
// A lookup failure is logged and the request continues anonymously.
func LoadSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Next()
		}
		s, err := auth.Current(c.UserContext(), sid)
		if err != nil {
			applog.Error(c, "session.load.fail", err, nil)
			return c.Next()
		}
		if s != nil {
			c.Locals("session", s)
			c.Locals("username", s.Username)
		}
		return c.Next()
	}
}

// RequireRole lets the request through only for a session of the given
// role; everyone else is sent to that role's login page.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := sessionOf(c)
		d := services.Authorize(s, role)
		if d.Allowed {
			return c.Next()
		}
		fields := map[string]any{"required": string(role)}
		if s != nil {
			fields["role"] = string(s.Role)
		}
		applog.Security(c, "access.denied."+string(role), fields)
		return c.Redirect(d.Redirect)
	}
}
