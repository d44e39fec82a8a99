package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/session"
)

// AuthHandler is the thin login proxy: credentials go straight to the
// backend, the returned bearer token is parked in the token store and only
// an opaque sid cookie reaches the browser.
type AuthHandler struct {
	API    *api.Client
	Tokens session.TokenStore
	TTL    time.Duration
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{"Err": "Username and password are required"})
	}

	token, err := h.API.Login(c.UserContext(), username, password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": api.Message(err)})
	}

	sid := uuid.NewString()
	if err := h.Tokens.Save(c.UserContext(), sid, token); err != nil {
		applog.Error(c, "auth.session.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("login", fiber.Map{"Err": "Could not start a session. Please try again."})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind TLS
		MaxAge:   int(h.TTL / time.Second),
	})

	applog.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/dashboard")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Tokens.Delete(c.UserContext(), sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
