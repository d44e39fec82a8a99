package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/services"
	"github.com/GlennSimanjorang/sarpras/internal/validate"
)

type UserHandler struct {
	Catalog *services.CatalogService
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.Users(c.UserContext())
	if err != nil {
		applog.Error(c, "users.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("users", fiber.Map{"Err": "Could not load users"})
	}
	return render(c, "users", fiber.Map{"Users": rows})
}

// POST /dashboard/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	username, ok := validate.Username(c.FormValue("username"))
	password := c.FormValue("password")
	if !ok || password == "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "user.create"})
		return c.Status(fiber.StatusBadRequest).Render("users", fiber.Map{
			"Err": "Username must be at least 3 characters and a password is required",
		})
	}
	if err := h.Catalog.CreateUser(c.UserContext(), username, password); err != nil {
		applog.Error(c, "users.create.fail", err, map[string]any{"username": username})
		return c.Status(fiber.StatusBadGateway).Render("users", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "users.create", map[string]any{"username": username})
	return c.Redirect("/dashboard/users")
}

// POST /dashboard/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}
	username, okName := validate.Username(c.FormValue("username"))
	if !okName {
		return c.Status(fiber.StatusBadRequest).Render("users", fiber.Map{
			"Err": "Username must be at least 3 characters",
		})
	}
	if err := h.Catalog.UpdateUser(c.UserContext(), id, username); err != nil {
		applog.Error(c, "users.update.fail", err, map[string]any{"user_id": id})
		return c.Status(fiber.StatusBadGateway).Render("users", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "users.update", map[string]any{"user_id": id})
	return c.Redirect("/dashboard/users")
}

// POST /dashboard/users/:id/delete
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}
	if err := h.Catalog.DeleteUser(c.UserContext(), id); err != nil {
		applog.Error(c, "users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(fiber.StatusBadGateway).Render("users", fiber.Map{"Err": api.Message(err)})
	}
	applog.Audit(c, "users.delete", map[string]any{"user_id": id})
	return c.Redirect("/dashboard/users")
}
