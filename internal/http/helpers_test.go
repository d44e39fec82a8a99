package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	"github.com/GlennSimanjorang/sarpras/internal/http/handlers"
	"github.com/GlennSimanjorang/sarpras/internal/session"
)

// memStore is an in-memory stand-in for the redis token store.
type memStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStore() *memStore { return &memStore{m: map[string]string{}} }

func (s *memStore) Save(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sid] = token
	return nil
}

func (s *memStore) Get(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.m[sid]
	if !ok {
		return "", session.ErrNoSession
	}
	return tok, nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}

type backendCall struct{ Method, Path string }

// fakeBackend plays the inventory API and records every call that reaches it.
type fakeBackend struct {
	srv   *httptest.Server
	mu    sync.Mutex
	calls []backendCall
	auths []string
}

func newFakeBackend(t *testing.T, handler http.HandlerFunc) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, backendCall{r.Method, r.URL.Path})
		b.auths = append(b.auths, r.Header.Get("Authorization"))
		b.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) saw(method, path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			return true
		}
	}
	return false
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *fakeBackend) lastAuth() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.auths) == 0 {
		return ""
	}
	return b.auths[len(b.auths)-1]
}

// newTestApp wires the same route table as cmd/sarpras, minus the hardening
// middleware that would get in the way of table-driven requests.
func newTestApp(backendURL string, store session.TokenStore) *fiber.App {
	client := api.New(backendURL, session.ContextSource{Store: store})
	deps := handlers.NewDeps(client, store, time.Hour)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	dash := app.Group("/dashboard", handlers.RequireSession(store))
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

	return app
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken fetches the login form once to obtain a usable token.
func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func postForm(t *testing.T, app *fiber.App, path, csrfTok, sid string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", csrfTok)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func getPage(t *testing.T, app *fiber.App, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
