package httpapi

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/espaceform/formation_portal/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(routeErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return routeErr
	})
	return app
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "validation error keeps its message",
			err:      &service.ValidationError{Message: "L'heure de fin doit être après l'heure de début"},
			wantCode: fiber.StatusBadRequest,
			wantBody: `{"error":"L'heure de fin doit être après l'heure de début"}`,
		},
		{
			name:     "not found",
			err:      &service.NotFoundError{Resource: "slot"},
			wantCode: fiber.StatusNotFound,
			wantBody: `{"error":"Ressource introuvable"}`,
		},
		{
			name:     "transport error hides details",
			err:      &service.TransportError{Op: "create slot", Err: errors.New("pool closed")},
			wantCode: fiber.StatusBadGateway,
			wantBody: `{"error":"Service momentanément indisponible, veuillez réessayer"}`,
		},
		{
			name:     "fiber error keeps its code",
			err:      fiber.ErrMethodNotAllowed,
			wantCode: fiber.StatusMethodNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.err)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Use(AuthContextMiddleware())
	app.Post("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "admin allowed", role: "admin", wantCode: fiber.StatusNoContent},
		{name: "formateur rejected", role: "formateur", wantCode: fiber.StatusForbidden},
		{name: "anonymous rejected", role: "", wantCode: fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/admin", nil)
			if tt.role != "" {
				req.Header.Set("X-User-Id", "42")
				req.Header.Set("X-User-Role", tt.role)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}
