package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/gbirreria/gb-api/internal/interfaces/http"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	pkgjwt "github.com/gbirreria/gb-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers di test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "mario"
	testIssuer    = "gb-api-test"
	testExpMin    = 60
)

// buildTestApp costruisce una applicazione Fiber minima con:
//   - AuthMiddleware per il parsing del JWT e il caricamento dei locals
//   - RequireRole per autorizzare l'accesso
//   - Un handler fittizio che risponde 200 se passa i middleware
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"username": apphttp.GetUsername(c),
				"role":     apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con il ruolo indicato.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "deve generarsi un token JWT valido")
	return "Bearer " + tok
}

// doRequest lancia una GET /protected e restituisce la risposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SenzaHeader(t *testing.T) {
	app := buildTestApp(entity.RoleManager, entity.RoleStaff)
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoNonBearer(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp := doRequest(t, app, "Basic abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenManomesso(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleManager)+"x")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FirmaConAltroSecret(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	tok, err := pkgjwt.Generate("altro-secret", testUsername, entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenScaduto(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, entity.RoleManager, testIssuer, -5)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Il manager accede a una rotta riservata ai manager.
func TestRequireRole_ManagerSuRottaManager(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleManager))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, testUsername, out.Username)
	assert.Equal(t, entity.RoleManager, out.Role)
}

// Lo staff viene respinto da una rotta riservata ai manager.
func TestRequireRole_StaffSuRottaManager(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleStaff))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

// Entrambi i ruoli accedono alle rotte di lettura.
func TestRequireRole_RotteDiLettura(t *testing.T) {
	app := buildTestApp(entity.RoleManager, entity.RoleStaff)

	for _, role := range []string{entity.RoleManager, entity.RoleStaff} {
		resp := doRequest(t, app, tokenForRole(t, role))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "ruolo %s", role)
	}
}

// Un ruolo fuori dall'insieme riconosciuto viene respinto.
func TestRequireRole_RuoloSconosciuto(t *testing.T) {
	app := buildTestApp(entity.RoleManager, entity.RoleStaff)
	resp := doRequest(t, app, tokenForRole(t, "ospite"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
