package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/services"
	"github.com/GlennSimanjorang/sarpras/internal/validate"
)

type ReturnHandler struct {
	Lifecycle *services.LifecycleService
}

// GET /dashboard/returns
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	rows, err := h.Lifecycle.ListReturns(c.UserContext())
	if err != nil {
		applog.Error(c, "returns.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("returns", fiber.Map{"Err": "Could not load returns"})
	}
	return render(c, "returns", fiber.Map{"Returns": rows})
}

// POST /dashboard/returns/:id/:action
func (h *ReturnHandler) Transition(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid return id")
	}
	action, err := services.ParseAction(c.Params("action"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid action")
	}

	if err := h.Lifecycle.TransitionReturn(c.UserContext(), id, action); err != nil {
		applog.Error(c, "returns."+string(action)+".fail", err, map[string]any{"return_id": id})
		return c.Status(fiber.StatusBadGateway).Render("returns", fiber.Map{
			"Err": fmt.Sprintf("Failed to %s return", action),
		})
	}
	applog.Audit(c, "returns."+string(action), map[string]any{"return_id": id})
	return c.Redirect("/dashboard/returns")
}
