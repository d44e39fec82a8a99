package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/session"
)

// RequireSession gates the dashboard routes: a request whose sid cookie has
// no stored token is sent to the login form. Backend 401s later in the page
// are deliberately not special-cased; they surface like any other failure.
func RequireSession(store session.TokenStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		if _, err := store.Get(c.UserContext(), sid); err != nil {
			applog.Security(c, "access.denied.session", map[string]any{"sid": sid})
			return c.Redirect("/login")
		}
		c.SetUserContext(session.WithSID(c.UserContext(), sid))
		c.Locals("authed", true)
		return c.Next()
	}
}
