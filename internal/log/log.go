package log

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "ts", logrus.FieldKeyMsg: "action"},
	})
	return l
}

// Logger exposes the process logger for code that runs outside a request.
func Logger() *logrus.Logger { return std }

// SetOutput redirects all log lines; tests use it to capture entries.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// SetLevel parses a level name; unknown names keep the current level.
func SetLevel(name string) {
	if lvl, err := logrus.ParseLevel(name); err == nil {
		std.SetLevel(lvl)
	}
}

func entry(c *fiber.Ctx, fields map[string]any) *logrus.Entry {
	e := std.WithFields(logrus.Fields{})
	if len(fields) > 0 {
		e = e.WithField("fields", fields)
	}
	if c == nil {
		return e
	}
	e = e.WithFields(logrus.Fields{
		"ip":     c.IP(),
		"method": c.Method(),
		"path":   c.Path(),
		"status": c.Response().StatusCode(),
	})
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		e = e.WithField("req_id", rid)
	}
	if u, ok := c.Locals("username").(string); ok && u != "" {
		e = e.WithField("user_id", u)
	}
	return e
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, fields).Info(action)
}

// Audit records a state change made on behalf of a subject.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, fields).WithField("audit", true).Info(action)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, fields).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry(c, fields)
	if err != nil {
		e = e.WithField("err", err.Error())
	}
	e.Error(action)
}
