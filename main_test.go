package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"catalog/internal/handlers"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// newTestApp assembles the full application shell without a database, the
// same degraded state the server runs in when the connection fails at boot.
func newTestApp(dbConnected bool) *fiber.App {
	repo := repositories.NewGORMProductRepository(nil)
	service := services.NewProductService(repo, nil)
	handler := handlers.NewProductHandler(service)
	return newApp(handler, "http://localhost:3000", dbConnected)
}

func TestHealthEndpointReportsDegradedDatabase(t *testing.T) {
	app := newTestApp(false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var payload map[string]string
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "unreachable", payload["database"])
	assert.NotEmpty(t, payload["time"])
}

func TestHealthEndpointReportsConnectedDatabase(t *testing.T) {
	app := newTestApp(true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var payload map[string]string
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "connected", payload["database"])
}

func TestProductRoutesAnswer500WithoutDatabase(t *testing.T) {
	app := newTestApp(false)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var payload handlers.MessageResponse
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Could not retrieve products", payload.Message)
}

func TestDocsRouteIsMounted(t *testing.T) {
	app := newTestApp(true)

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/docs/index.html", resp.Header.Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/docs/index.html", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAppShellCORS(t *testing.T) {
	app := newTestApp(true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://untrusted.example.com")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
