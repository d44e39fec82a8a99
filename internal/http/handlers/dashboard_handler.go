package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/services"
)

type DashboardHandler struct {
	Dash *services.DashboardService
}

// GET /dashboard?range=7d|30d|90d
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	rng := c.Query("range", "90d")
	switch rng {
	case "7d", "30d", "90d":
	default:
		rng = "90d"
	}

	counts, err := h.Dash.Counts(c.UserContext())
	if err != nil {
		applog.Error(c, "dashboard.count.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("dashboard", fiber.Map{
			"Err":   "Failed to load dashboard: " + api.Message(err),
			"Range": rng,
		})
	}

	return render(c, "dashboard", fiber.Map{
		"Counts": counts,
		"Series": services.WindowSeries(counts.DueDateSummary, rng),
		"Range":  rng,
	})
}
