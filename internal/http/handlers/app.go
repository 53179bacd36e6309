package handlers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"snapbook/internal/domain"
	applog "snapbook/internal/log"
	"snapbook/internal/metrics"
)

type Options struct {
	TemplatesDir string
	StaticDir    string
	MediaDir     string
	CookieSecure bool

	// RateMax is the global per-IP budget per minute; LoginMax the login
	// attempts allowed per IP in ten minutes.
	RateMax  int
	LoginMax int

	// AccessLog turns on fiber's access logger.
	AccessLog bool
}

// maxBodyBytes leaves room for a 5 MiB portrait plus form fields.
const maxBodyBytes = 6 << 20

// NewApp builds the fiber app with middleware and every route.
func NewApp(d *Deps, o Options) *fiber.App {
	if o.RateMax <= 0 {
		o.RateMax = 120
	}
	if o.LoginMax <= 0 {
		o.LoginMax = 5
	}

	engine := html.New(o.TemplatesDir, ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    maxBodyBytes,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if o.AccessLog {
		app.Use(logger.New())
	}
	app.Use(metrics.Middleware())
	app.Use(helmet.New())
	app.Use(LoadSession(d.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        o.RateMax,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/") || p == "/metrics" || p == "/healthz"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   o.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	if o.StaticDir != "" {
		app.Static("/static", o.StaticDir)
	}
	if o.MediaDir != "" {
		app.Get("/media/*", serveMedia(o.MediaDir))
	}
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", metrics.Handler())

	Register(app, d, o)

	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "")
	})
	return app
}

// Register mounts the page routes.
func Register(app *fiber.App, d *Deps, o Options) {
	auth := d.AuthHandler
	app.Get("/", auth.Home)
	app.Get("/register", auth.RegisterForm)
	app.Post("/register", auth.Register)
	app.Get("/login", auth.LoginSelect)
	app.Get("/login/:role", auth.LoginForm)
	app.Post("/login/:role", limiter.New(limiter.Config{
		Max:        o.LoginMax,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			role, _ := domain.ParseRole(c.Params("role"))
			return renderStatus(c, fiber.StatusTooManyRequests, "login", fiber.Map{
				"Err": "Too many attempts. Please try again later.", "Role": role, "Title": role.Title(), "Username": "",
			})
		},
	}), auth.Login)
	app.Get("/logout", auth.Logout)

	book := d.BookingHandler
	customer := RequireRole(domain.RoleCustomer)
	app.Get("/photographers", customer, book.Photographers)
	app.Get("/book/:id", customer, book.BookForm)
	app.Post("/book/:id", customer, book.Book)
	app.Get("/dashboard", customer, book.Dashboard)
	app.Get("/photographer-dashboard", RequireRole(domain.RolePhotographer), book.PhotographerDashboard)

	admin := d.AdminHandler
	adminOnly := RequireRole(domain.RoleAdmin)
	app.Get("/admin-dashboard", adminOnly, admin.Dashboard)
	app.Get("/admin/photographers", adminOnly, admin.Photographers)
	app.Get("/admin/photographer/add", adminOnly, admin.AddForm)
	app.Post("/admin/photographer/add", adminOnly, admin.Add)
	app.Post("/admin/photographer/:id/delete", adminOnly, admin.Delete)
}

// mediaPath resolves the /media/* suffix to a file under dir. Uploaded keys
// are plain folder/uuid.ext names, so escapes, backslashes, NULs and any
// relative step that leaves dir are refused.
func mediaPath(dir, key string) (string, bool) {
	if key == "" || strings.ContainsAny(key, "%\\\x00") || filepath.IsAbs(key) {
		return "", false
	}
	full := filepath.Join(dir, key)
	rel, err := filepath.Rel(dir, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

func serveMedia(dir string) fiber.Handler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return func(c *fiber.Ctx) error {
		key := c.Params("*")
		full, ok := mediaPath(dir, key)
		if !ok {
			applog.Security(c, "media.traversal.block", map[string]any{"path": key})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(full, true)
	}
}
