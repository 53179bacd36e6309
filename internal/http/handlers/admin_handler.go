package handlers

import (
	"github.com/gofiber/fiber/v2"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	applog "snapbook/internal/log"
	"snapbook/internal/services"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Stats   *services.StatsService
}

// GET /admin-dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	st, err := h.Stats.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": st})
}

// GET /admin/photographers
func (h *AdminHandler) Photographers(c *fiber.Ctx) error {
	list, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "admin_photographers", fiber.Map{"Photographers": list})
}

func addFormData(in services.AddPhotographerInput) fiber.Map {
	chosen := map[string]bool{}
	for _, d := range in.Availability {
		chosen[d] = true
	}
	return fiber.Map{"Form": in, "Weekdays": domain.Weekdays, "Chosen": chosen}
}

// GET /admin/photographer/add
func (h *AdminHandler) AddForm(c *fiber.Ctx) error {
	data := addFormData(services.AddPhotographerInput{})
	data["Err"] = ""
	return render(c, "admin_add_photographer", data)
}

// POST /admin/photographer/add
func (h *AdminHandler) Add(c *fiber.Ctx) error {
	in := services.AddPhotographerInput{
		Name:           c.FormValue("name"),
		Specialization: c.FormValue("specialization"),
		Rate:           c.FormValue("rate"),
		Contact:        c.FormValue("contact"),
		Bio:            c.FormValue("bio"),
		Experience:     c.FormValue("experience"),
		Location:       c.FormValue("location"),
		Skills:         c.FormValue("skills"),
		ImageURL:       c.FormValue("image_url"),
		Username:       c.FormValue("username"),
		Password:       c.FormValue("password"),
	}
	if form, err := c.MultipartForm(); err == nil {
		in.Availability = form.Value["availability"]
	} else {
		for _, v := range c.Context().PostArgs().PeekMulti("availability") {
			in.Availability = append(in.Availability, string(v))
		}
	}

	if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		in.Image = &services.Image{Body: f, Size: fh.Size, ContentType: fh.Header.Get("Content-Type")}
	}

	p, err := h.Catalog.Add(c.UserContext(), in)
	if err != nil {
		in.Password = ""
		return formError(c, "admin.photographer.add", "admin_add_photographer", err, addFormData(in))
	}
	applog.Audit(c, "admin.photographer.add", map[string]any{"photographer_id": p.ID, "username": in.Username})
	return c.Redirect("/admin/photographers")
}

// POST /admin/photographer/:id/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := photographerID(c)
	if !ok {
		return c.Redirect("/admin/photographers")
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		if apperr.IsNotFound(err) {
			return c.Redirect("/admin/photographers")
		}
		return err
	}
	applog.Audit(c, "admin.photographer.delete", map[string]any{"photographer_id": id})
	return c.Redirect("/admin/photographers")
}
