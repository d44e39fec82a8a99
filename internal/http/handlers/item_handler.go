package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/services"
	"github.com/GlennSimanjorang/sarpras/internal/validate"
)

type ItemHandler struct {
	Catalog *services.CatalogService
}

// List renders the items table with the category options the create/edit
// forms need. A category fetch failure only degrades the form, not the page.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.Items(c.UserContext())
	if err != nil {
		applog.Error(c, "items.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("items", fiber.Map{"Err": "Could not load items"})
	}
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		applog.Error(c, "items.categories.fail", err, nil)
	}
	return render(c, "items", fiber.Map{"Items": rows, "Categories": cats})
}

// POST /dashboard/items (multipart: name, stock, category_slugs, image)
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	name, okName := validate.ItemName(c.FormValue("name"))
	stock, okStock := validate.Stock(c.FormValue("stock"))
	slug, okSlug := validate.Slug(c.FormValue("category_slugs"))
	if !okName || !okStock || stock < 1 || !okSlug {
		applog.Security(c, "validation.fail", map[string]any{"form": "item.create"})
		return c.Status(fiber.StatusBadRequest).Render("items", fiber.Map{
			"Err": "Name must be at least 4 characters, stock at least 1 and a category is required",
		})
	}
	image, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("items", fiber.Map{"Err": "An image file is required"})
	}

	if err := h.Catalog.CreateItem(c.UserContext(), name, stock, slug, image); err != nil {
		applog.Error(c, "items.create.fail", err, map[string]any{"name": name})
		return c.Status(fiber.StatusBadGateway).Render("items", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "items.create", map[string]any{"name": name, "stock": stock})
	return c.Redirect("/dashboard/items")
}

// POST /dashboard/items/:sku
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	sku, ok := validate.SKU(c.Params("sku"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid sku")
	}
	name, okName := validate.ItemName(c.FormValue("name"))
	stock, okStock := validate.Stock(c.FormValue("stock"))
	slug, okSlug := validate.Slug(c.FormValue("category_slugs"))
	if !okName || !okStock || !okSlug {
		applog.Security(c, "validation.fail", map[string]any{"form": "item.update", "sku": sku})
		return c.Status(fiber.StatusBadRequest).Render("items", fiber.Map{
			"Err": "Name must be at least 4 characters, stock cannot be negative and a category is required",
		})
	}
	if err := h.Catalog.UpdateItem(c.UserContext(), sku, name, stock, slug); err != nil {
		applog.Error(c, "items.update.fail", err, map[string]any{"sku": sku})
		return c.Status(fiber.StatusBadGateway).Render("items", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "items.update", map[string]any{"sku": sku, "stock": stock})
	return c.Redirect("/dashboard/items")
}

// POST /dashboard/items/:sku/delete
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	sku, ok := validate.SKU(c.Params("sku"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid sku")
	}
	if err := h.Catalog.DeleteItem(c.UserContext(), sku); err != nil {
		applog.Error(c, "items.delete.fail", err, map[string]any{"sku": sku})
		return c.Status(fiber.StatusBadGateway).Render("items", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "items.delete", map[string]any{"sku": sku})
	return c.Redirect("/dashboard/items")
}

// POST /dashboard/items/:sku/image (multipart field: image)
func (h *ItemHandler) ChangeImage(c *fiber.Ctx) error {
	sku, ok := validate.SKU(c.Params("sku"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid sku")
	}
	image, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("items", fiber.Map{"Err": "An image file is required"})
	}
	if err := h.Catalog.ChangeItemImage(c.UserContext(), sku, image); err != nil {
		applog.Error(c, "items.image.fail", err, map[string]any{"sku": sku})
		return c.Status(fiber.StatusBadGateway).Render("items", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "items.image", map[string]any{"sku": sku})
	return c.Redirect("/dashboard/items")
}
