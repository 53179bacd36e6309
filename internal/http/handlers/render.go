package handlers

import (
	"github.com/gofiber/fiber/v2"

	"snapbook/internal/domain"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := sessionOf(c); s != nil {
		data["Session"] = s
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// the cookie carries the same token when Locals was not populated
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

// renderStatus renders tmpl with an explicit status code.
func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	if msg == "" {
		msg = "Page not found"
	}
	return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": msg})
}

func sessionOf(c *fiber.Ctx) *domain.Session {
	s, _ := c.Locals("session").(*domain.Session)
	return s
}
