package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"pocket-crm/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func newApp(p Pinger) *fiber.App {
	app := fiber.New()
	NewHealthApi(NewHealthController(p), &config.Config{SkipAuth: true}).Setup(app)
	return app
}

func TestHealthOK(t *testing.T) {
	resp, err := newApp(stubPinger{}).Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealthDatabaseDown(t *testing.T) {
	resp, err := newApp(stubPinger{err: errors.New("no primary")}).Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	resp, err := newApp(stubPinger{}).Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMeWithDevClaims(t *testing.T) {
	resp, err := newApp(stubPinger{}).Test(httptest.NewRequest("GET", "/api/me", nil))
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "dev-user", body["user_id"])
}
