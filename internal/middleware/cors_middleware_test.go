package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	allowed := OriginAllowed("http://localhost:3000")

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "configured origin", origin: "http://localhost:3000", want: true},
		{name: "different host", origin: "http://example.com", want: false},
		{name: "different port", origin: "http://localhost:3001", want: false},
		{name: "different scheme", origin: "https://localhost:3000", want: false},
		{name: "subdomain of configured host", origin: "http://app.localhost:3000", want: false},
		{name: "empty origin", origin: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allowed(tt.origin))
		})
	}
}

func newCORSApp() *fiber.App {
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: OriginAllowed("http://localhost:3000"),
	}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestCORSEchoesConfiguredOrigin(t *testing.T) {
	app := newCORSApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSOmitsHeaderForOtherOrigins(t *testing.T) {
	app := newCORSApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightForConfiguredOrigin(t *testing.T) {
	app := newCORSApp()

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
