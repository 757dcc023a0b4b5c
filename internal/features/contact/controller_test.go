package contact

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	svc, _, _ := newTestService()
	ctrl := NewContactController(svc)
	app := fiber.New()
	app.Post("/api/contacts", ctrl.CreateContact)
	app.Get("/api/contacts/:id", ctrl.GetContact)
	return app
}

func TestCreateContactHandler(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"created", `{"name":"Jane","mobile":"555","custom_fields":{"cf1":"VIP"}}`, fiber.StatusCreated},
		{"missing mobile", `{"name":"Jane"}`, fiber.StatusBadRequest},
		{"unknown slot name", `{"name":"Jane","mobile":"1","custom_fields":{"cf99":"x"}}`, fiber.StatusBadRequest},
		{"malformed", `{`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetContactHandler(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{"name":"Jane","mobile":"555"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var created Contact
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/contacts/"+created.ID.Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/contacts/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/contacts/64b7f0c2a1b2c3d4e5f60718", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
