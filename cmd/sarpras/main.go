package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	"github.com/GlennSimanjorang/sarpras/internal/config"
	"github.com/GlennSimanjorang/sarpras/internal/http/handlers"
	applog "github.com/GlennSimanjorang/sarpras/internal/log"
	"github.com/GlennSimanjorang/sarpras/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd})
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	tokens := session.NewRedisTokenStore(rdb, cfg.SessionTTL)
	client := api.New(cfg.APIBaseURL, session.ContextSource{Store: tokens})

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 8 << 20 // item images travel through here

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	// ---------- Routes ----------
	deps := handlers.NewDeps(client, tokens, cfg.SessionTTL)

	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard") })
	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	dash := app.Group("/dashboard", handlers.RequireSession(tokens))
	dash.Get("/", deps.Dashboard.Home)

	dash.Get("/borrowings", deps.Borrowings.List)
	dash.Get("/borrowings/export", deps.Borrowings.Export)
	dash.Post("/borrowings/:id/:action", deps.Borrowings.Transition)

	dash.Get("/returns", deps.Returns.List)
	dash.Post("/returns/:id/:action", deps.Returns.Transition)

	dash.Get("/categories", deps.Categories.List)
	dash.Post("/categories", deps.Categories.Create)
	dash.Post("/categories/:slug", deps.Categories.Update)
	dash.Post("/categories/:slug/delete", deps.Categories.Delete)

	dash.Get("/items", deps.Items.List)
	dash.Post("/items", deps.Items.Create)
	dash.Post("/items/:sku", deps.Items.Update)
	dash.Post("/items/:sku/delete", deps.Items.Delete)
	dash.Post("/items/:sku/image", deps.Items.ChangeImage)

	dash.Get("/users", deps.Users.List)
	dash.Post("/users", deps.Users.Create)
	dash.Post("/users/:id", deps.Users.Update)
	dash.Post("/users/:id/delete", deps.Users.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
