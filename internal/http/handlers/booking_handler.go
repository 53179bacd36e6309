package handlers

import (
	"github.com/gofiber/fiber/v2"

	"snapbook/internal/apperr"
	applog "snapbook/internal/log"
	"snapbook/internal/services"
	"snapbook/internal/validate"
)

type BookingHandler struct {
	Catalog  *services.CatalogService
	Bookings *services.BookingService
}

// GET /photographers
func (h *BookingHandler) Photographers(c *fiber.Ctx) error {
	list, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "photographers", fiber.Map{"Photographers": list})
}

// photographerID reads the :id segment; malformed ids are logged and refused.
func photographerID(c *fiber.Ctx) (string, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "photographer"})
	}
	return id, ok
}

// GET /book/:id
func (h *BookingHandler) BookForm(c *fiber.Ctx) error {
	id, ok := photographerID(c)
	if !ok {
		return c.Redirect("/photographers")
	}
	p, err := h.Catalog.Get(c.UserContext(), id)
	if apperr.IsNotFound(err) {
		return c.Redirect("/photographers")
	}
	if err != nil {
		return err
	}
	return render(c, "book", fiber.Map{"Photographer": p, "Err": ""})
}

// POST /book/:id
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, ok := photographerID(c)
	if !ok {
		return c.Redirect("/photographers")
	}
	in := services.BookingInput{
		CustomerID:     sessionOf(c).Username,
		PhotographerID: id,
		Date:           c.FormValue("date"),
		Time:           c.FormValue("time"),
		Location:       c.FormValue("location"),
		Notes:          c.FormValue("notes"),
	}
	b, err := h.Bookings.Create(ctx, in)
	if apperr.IsNotFound(err) {
		return c.Redirect("/photographers")
	}
	if err != nil {
		p, perr := h.Catalog.Get(ctx, id)
		if perr != nil {
			return perr
		}
		return formError(c, "booking.create", "book", err, fiber.Map{"Photographer": p, "Form": in})
	}
	applog.Audit(c, "booking.create", map[string]any{
		"booking_id": b.ID, "photographer_id": b.PhotographerID, "date": b.Date, "time": b.Time,
	})
	return c.Redirect("/dashboard")
}

// GET /dashboard
func (h *BookingHandler) Dashboard(c *fiber.Ctx) error {
	list, err := h.Bookings.ListForCustomer(c.UserContext(), sessionOf(c).Username)
	if err != nil {
		return err
	}
	return render(c, "dashboard", fiber.Map{"Bookings": list})
}

// GET /photographer-dashboard
func (h *BookingHandler) PhotographerDashboard(c *fiber.Ctx) error {
	s := sessionOf(c)
	ctx := c.UserContext()
	list, err := h.Bookings.ListForPhotographer(ctx, s.PhotographerID)
	if err != nil {
		return err
	}
	data := fiber.Map{"Bookings": list}
	if p, err := h.Catalog.Get(ctx, s.PhotographerID); err == nil {
		data["Photographer"] = p
	} else if !apperr.IsNotFound(err) {
		return err
	}
	return render(c, "photographer_dashboard", data)
}
