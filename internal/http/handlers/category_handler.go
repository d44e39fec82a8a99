package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/services"
	"github.com/GlennSimanjorang/sarpras/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("categories", fiber.Map{"Err": "Could not load categories"})
	}
	return render(c, "categories", fiber.Map{"Categories": rows})
}

// POST /dashboard/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	name, okName := validate.CategoryName(c.FormValue("name"))
	slug, okSlug := validate.Slug(c.FormValue("slug"))
	if !okName || !okSlug {
		applog.Security(c, "validation.fail", map[string]any{"form": "category.create"})
		return c.Status(fiber.StatusBadRequest).Render("categories", fiber.Map{
			"Err": "Name must be at least 3 characters and slug must be URL-safe",
		})
	}
	if err := h.Catalog.CreateCategory(c.UserContext(), name, slug); err != nil {
		applog.Error(c, "categories.create.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusBadGateway).Render("categories", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "categories.create", map[string]any{"slug": slug})
	return c.Redirect("/dashboard/categories")
}

// POST /dashboard/categories/:slug
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid slug")
	}
	name, okName := validate.CategoryName(c.FormValue("name"))
	if !okName {
		return c.Status(fiber.StatusBadRequest).Render("categories", fiber.Map{
			"Err": "Name must be at least 3 characters",
		})
	}
	if err := h.Catalog.UpdateCategory(c.UserContext(), slug, name); err != nil {
		applog.Error(c, "categories.update.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusBadGateway).Render("categories", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "categories.update", map[string]any{"slug": slug})
	return c.Redirect("/dashboard/categories")
}

// POST /dashboard/categories/:slug/delete
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid slug")
	}
	if err := h.Catalog.DeleteCategory(c.UserContext(), slug); err != nil {
		applog.Error(c, "categories.delete.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusBadGateway).Render("categories", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "categories.delete", map[string]any{"slug": slug})
	return c.Redirect("/dashboard/categories")
}
