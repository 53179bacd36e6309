package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"snapbook/internal/apperr"
	applog "snapbook/internal/log"
)

// statusOf maps an application error to the status used when the form is
// re-rendered with it.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindAuth:
		return fiber.StatusUnauthorized
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// formError logs err and re-renders tmpl with the user-facing message.
func formError(c *fiber.Ctx, action, tmpl string, err error, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if apperr.KindOf(err) == apperr.KindStore {
		applog.Error(c, action+".fail", err, nil)
	} else {
		applog.Info(c, action+".rejected", map[string]any{"code": apperr.CodeOf(err)})
	}
	data["Err"] = apperr.Message(err)
	return renderStatus(c, statusOf(err), tmpl, data)
}

// ErrorHandler is the app-wide fallback. A 404 gets the not-found page; any
// other failure keeps its fiber status (500 for plain errors) and shows only
// the generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	if status == fiber.StatusNotFound {
		return notFound(c, "")
	}
	applog.Error(c, "server.error", err, map[string]any{"status": status})
	if rerr := renderStatus(c, status, "notfound", fiber.Map{"Message": apperr.GenericMessage}); rerr != nil {
		return c.Status(status).SendString(apperr.GenericMessage)
	}
	return nil
}
