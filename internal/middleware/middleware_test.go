package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-backend/internal/application/health"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookie_SignAndParse(t *testing.T) {
	v := SessionCookieValue("abc", "secret")
	assert.Equal(t, "abc", parseSessionCookie(v, "secret"))
	assert.Equal(t, "", parseSessionCookie(v, "other"))
	assert.Equal(t, "", parseSessionCookie("s:abc.forged", "secret"))
	assert.Equal(t, "abc", parseSessionCookie(SessionCookieValue("abc", ""), ""))
	assert.Equal(t, "", parseSessionCookie("abc", ""))
}

// sessionApp wires Session, a login route that stores a user, and a protected route.
func sessionApp(t *testing.T) (*fiber.App, SessionConfig) {
	rdb, _ := testutil.Redis(t)
	cfg := SessionConfig{Secret: "secret"}
	app := fiber.New()
	app.Use(Session(cfg, rdb))
	app.Post("/login", func(c *fiber.Ctx) error {
		id := RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{ID: "u1", Email: "admin@site.test"})
		cookie := SessionCookieConfig(cfg)
		cookie.Value = SessionCookieValue(id, cfg.Secret)
		c.Cookie(&cookie)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(GetUser(c))
	})
	return app, cfg
}

func TestSession_RoundTripThroughRedis(t *testing.T) {
	app, _ := sessionApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookies[0])
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "u1", user["id"])

	tampered := &http.Cookie{Name: SessionCookieName, Value: cookies[0].Value + "x"}
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(tampered)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func gateApp(signedIn bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if signedIn {
			c.Locals(userLocal, map[string]interface{}{"id": "u1"})
		}
		return c.Next()
	})
	app.Use(SessionGate())
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("page") })
	return app
}

func TestSessionGate(t *testing.T) {
	cases := []struct {
		name     string
		signedIn bool
		path     string
		status   int
		location string
	}{
		{"anonymous admin home", false, "/admin", fiber.StatusFound, LoginPath},
		{"anonymous admin subpage", false, "/admin/projects", fiber.StatusFound, LoginPath},
		{"anonymous login", false, "/admin/login", fiber.StatusOK, ""},
		{"signed in login", true, "/admin/login", fiber.StatusFound, AdminPath},
		{"signed in admin", true, "/admin/projects", fiber.StatusOK, ""},
		{"public page", false, "/about", fiber.StatusOK, ""},
		{"lookalike prefix", false, "/administrator", fiber.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := gateApp(tc.signedIn).Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.location, resp.Header.Get("Location"))
		})
	}
}

func TestHealthMarker_CountsAndLogsServerErrors(t *testing.T) {
	rdb, _ := testutil.Redis(t)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Tracing())
	app.Use(HealthMarker(rdb))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadGateway, "upstream") })
	app.Get("/health/json", func(c *fiber.Ctx) error { return c.SendString("skip") })

	for _, p := range []string{"/ok", "/boom", "/health/json"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, p, nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
	}

	ctx := context.Background()
	assert.Equal(t, "2", rdb.Get(ctx, health.KeyReqTotal).Val())
	assert.Equal(t, "1", rdb.Get(ctx, health.KeyReqErrors).Val())
	entries, err := health.Errors(ctx, rdb)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/boom", entries[0]["path"])
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(CORSConfig{AllowedSuffix: ".site.test", DevPassword: "pw"}))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("x") })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://www.site.test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://www.site.test", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	req.Header.Set("dev-password", "pw")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTracing_KeepsCallerUUID(t *testing.T) {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetTraceID(c)) })

	const given = "6f1c2b0e-3f57-4c1e-9a43-0c5ad9b0f7a1"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, given)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, given, resp.Header.Get(TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "not-a-uuid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	got := resp.Header.Get(TraceIDHeader)
	assert.NotEqual(t, "not-a-uuid", got)
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, got, string(b))
}

func TestErrorHandler_MapsReturnedErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error { return fmt.Errorf("load: %w", domain.ErrNotFound) })
	app.Get("/invalid", func(c *fiber.Ctx) error { return domain.Invalid("name is required") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("disk on fire") })

	cases := map[string]struct {
		status  int
		message string
	}{
		"/missing": {fiber.StatusNotFound, domain.ErrNotFound.Error()},
		"/invalid": {fiber.StatusBadRequest, "name is required"},
		"/boom":    {fiber.StatusInternalServerError, "Internal Server Error"},
		"/nowhere": {fiber.StatusNotFound, "Cannot GET /nowhere"},
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want.status, resp.StatusCode, path)
		var body map[string]interface{}
		testutil.DecodeJSON(t, resp, &body)
		assert.Equal(t, false, body["success"], path)
		assert.Equal(t, want.message, body["error"], path)
	}
}
