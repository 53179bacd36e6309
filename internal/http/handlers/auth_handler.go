package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	"snapbook/internal/log"
	"snapbook/internal/services"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) setSID(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  expires,
	})
}

// GET /
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	return render(c, "index", nil)
}

// GET /register
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": "", "Username": "", "Email": ""})
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	in := services.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Confirm:  c.FormValue("confirm_password"),
	}
	acc, err := h.Auth.Register(c.UserContext(), in)
	if err != nil {
		return formError(c, "auth.register", "register", err, fiber.Map{
			"Username": in.Username,
			"Email":    in.Email,
		})
	}
	log.Audit(c, "auth.register.success", map[string]any{"username": acc.Username})
	return c.Redirect(domain.RoleCustomer.LoginPath())
}

// GET /login shows the three portals.
func (h *AuthHandler) LoginSelect(c *fiber.Ctx) error {
	return render(c, "login_select", fiber.Map{"Roles": domain.Roles})
}

func portal(c *fiber.Ctx) (domain.Role, bool) {
	return domain.ParseRole(c.Params("role"))
}

// GET /login/:role
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	role, ok := portal(c)
	if !ok {
		return notFound(c, "")
	}
	return render(c, "login", fiber.Map{"Err": "", "Role": role, "Title": role.Title(), "Username": ""})
}

// POST /login/:role
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	role, ok := portal(c)
	if !ok {
		return notFound(c, "")
	}
	username := c.FormValue("username")
	sess, err := h.Auth.Login(c.UserContext(), role, username, c.FormValue("password"))
	if err != nil {
		if apperr.IsAuth(err) {
			log.Security(c, "auth.login.fail", map[string]any{"username": username, "portal": string(role)})
		}
		return formError(c, "auth.login", "login", err, fiber.Map{
			"Role":     role,
			"Title":    role.Title(),
			"Username": username,
		})
	}
	h.setSID(c, sess.ID, time.Time{})
	c.Locals("username", sess.Username)
	log.Audit(c, "auth.login.success", map[string]any{"username": sess.Username, "role": string(sess.Role)})
	return c.Redirect(role.HomePath())
}

// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
	}
	h.setSID(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
