package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/erp-system/internal/domain/entity"
	apphttp "github.com/shyakx/erp-system/internal/interfaces/http"
	pkgjwt "github.com/shyakx/erp-system/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "erp-system-test"
)

// guardedApp expone GET /guarded detrás de AuthMiddleware + RequireRole(roles...).
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

func bearer(t *testing.T, role string, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, expMinutes)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ── RequireRole ──────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		allowed  []string
		header   func(t *testing.T) string
		status   int
		wantCode string
	}{
		{
			name:    "contador en libro mayor",
			allowed: []string{entity.RoleAdmin, entity.RoleAccountant},
			header:  func(t *testing.T) string { return bearer(t, entity.RoleAccountant, 60) },
			status:  http.StatusOK,
		},
		{
			name:    "admin pasa en cualquier grupo",
			allowed: []string{entity.RoleAdmin, entity.RoleHR},
			header:  func(t *testing.T) string { return bearer(t, entity.RoleAdmin, 60) },
			status:  http.StatusOK,
		},
		{
			name:     "almacenista en nómina",
			allowed:  []string{entity.RoleAdmin, entity.RoleHR},
			header:   func(t *testing.T) string { return bearer(t, entity.RoleStorekeeper, 60) },
			status:   http.StatusForbidden,
			wantCode: "FORBIDDEN",
		},
		{
			name:     "token sin rol",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return bearer(t, "", 60) },
			status:   http.StatusUnauthorized,
			wantCode: "MISSING_ROLE",
		},
		{
			name:     "token expirado",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return bearer(t, entity.RoleAdmin, -1) },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
		{
			name:     "sin header",
			allowed:  []string{entity.RoleAdmin},
			header:   func(*testing.T) string { return "" },
			status:   http.StatusUnauthorized,
			wantCode: "MISSING_TOKEN",
		},
		{
			name:     "esquema distinto de Bearer",
			allowed:  []string{entity.RoleAdmin},
			header:   func(*testing.T) string { return "Basic dXNlcjpwYXNz" },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
		{
			name:     "token malformado",
			allowed:  []string{entity.RoleAdmin},
			header:   func(*testing.T) string { return "Bearer token.invalido.aqui" },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set(fiber.HeaderAuthorization, h)
			}
			resp, err := guardedApp(tc.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, body["code"])
			}
		})
	}
}

// ── AuthMiddleware ───────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaClaimsEnLocals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, entity.RoleHR, 60))
	resp, err := guardedApp(entity.RoleHR).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleHR, body["role"])
}
