package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/shyakx/erp-system/internal/interfaces/http"
)

func TestRequestLogger_UnaLineaPorPeticion(t *testing.T) {
	cases := []struct {
		path    string
		status  int
		level   string
		wantErr bool
	}{
		{"/ok", fiber.StatusOK, "info", false},
		{"/missing", fiber.StatusNotFound, "warn", false},
		{"/boom", fiber.StatusInternalServerError, "error", true},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var buf bytes.Buffer
			app := fiber.New()
			app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
			app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
			app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
			app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db caída") })

			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 1, buf.String())

			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
			assert.Equal(t, tc.level, entry["level"])
			assert.Equal(t, float64(tc.status), entry["status"])
			assert.Equal(t, tc.path, entry["path"])
			_, hasErr := entry["error"]
			assert.Equal(t, tc.wantErr, hasErr)
		})
	}
}
