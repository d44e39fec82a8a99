package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/services"
	"github.com/GlennSimanjorang/sarpras/internal/validate"
)

type BorrowingHandler struct {
	Lifecycle *services.LifecycleService
}

// GET /dashboard/borrowings
func (h *BorrowingHandler) List(c *fiber.Ctx) error {
	rows, err := h.Lifecycle.ListBorrowings(c.UserContext())
	if err != nil {
		applog.Error(c, "borrowings.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("borrowings", fiber.Map{"Err": "Could not load borrowings"})
	}
	return render(c, "borrowings", fiber.Map{"Borrowings": rows})
}

// POST /dashboard/borrowings/:id/:action
//
// On success the redirect back to the list is the refetch; on failure the
// list is rendered with a blocking message naming the action and nothing is
// refetched.
func (h *BorrowingHandler) Transition(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid borrowing id")
	}
	action, err := services.ParseAction(c.Params("action"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid action")
	}

	if err := h.Lifecycle.TransitionBorrowing(c.UserContext(), id, action); err != nil {
		applog.Error(c, "borrowings."+string(action)+".fail", err, map[string]any{"borrowing_id": id})
		return c.Status(fiber.StatusBadGateway).Render("borrowings", fiber.Map{
			"Err": fmt.Sprintf("Failed to %s borrowing", action),
		})
	}
	applog.Audit(c, "borrowings."+string(action), map[string]any{"borrowing_id": id})
	return c.Redirect("/dashboard/borrowings")
}

// GET /dashboard/borrowings/export
func (h *BorrowingHandler) Export(c *fiber.Ctx) error {
	data, contentType, err := h.Lifecycle.ExportBorrowings(c.UserContext())
	if err != nil {
		applog.Error(c, "borrowings.export.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("borrowings", fiber.Map{"Err": "Download failed. Please try again."})
	}
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="borrowings.xlsx"`)
	applog.Audit(c, "borrowings.export", map[string]any{"bytes": len(data)})
	return c.Send(data)
}
