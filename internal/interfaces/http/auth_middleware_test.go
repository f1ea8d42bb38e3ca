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

	apphttp "github.com/rmacedo/caixa-api/internal/interfaces/http"
	"github.com/rmacedo/caixa-api/internal/domain/permission"
	pkgjwt "github.com/rmacedo/caixa-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "operador"
	testIssuer    = "caixa-api-test"
	testExpMin    = 60
)

// buildRoleApp monta uma aplicação Fiber mínima com uma rota protegida por
// AuthMiddleware + RequireRole.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// buildCapApp idem, protegida por RequireCapability.
func buildCapApp(cap permission.Capability) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(cap),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

// tokenFor gera um JWT com o papel e as concessões extras indicadas.
func tokenFor(t *testing.T, role string, perms ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, role, perms, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara GET /protected e devolve a resposta.
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

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: usuário tem o papel exigido → HTTP 200.
func TestRequireRole_ManagerAcessaRotaDeManager(t *testing.T) {
	app := buildRoleApp("manager")
	resp := doRequest(t, app, tokenFor(t, "manager"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "manager", body["role"])
}

// Caso 1b: admin passa em qualquer rota, mesmo sem estar na lista.
func TestRequireRole_AdminSempreAcessa(t *testing.T) {
	app := buildRoleApp("reception")
	resp := doRequest(t, app, tokenFor(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin deve acessar rota restrita a recepção")
}

// Caso 2: papel diferente do exigido → HTTP 403 Forbidden.
func TestRequireRole_VendasBloqueadoEmRotaDeManager(t *testing.T) {
	app := buildRoleApp("manager")
	resp := doRequest(t, app, tokenFor(t, "vendas"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 3: token sem papel → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSemPapel_Retorna401(t *testing.T) {
	app := buildRoleApp("manager")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "", nil, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Caso 4: sem header Authorization → HTTP 401.
func TestRequireRole_SemAuthHeader_Retorna401(t *testing.T) {
	app := buildRoleApp("manager")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token malformado → HTTP 401.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildRoleApp("manager")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequireCapability
// ──────────────────────────────────────────────────────────────────────────────

// Recepção tem cash_operations por padrão → 200.
func TestRequireCapability_RecepcaoOperaCaixa(t *testing.T) {
	app := buildCapApp(permission.CashOperations)
	resp := doRequest(t, app, tokenFor(t, "reception"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Vendas não tem cash_operations por padrão → 403.
func TestRequireCapability_VendasSemCaixa_Retorna403(t *testing.T) {
	app := buildCapApp(permission.CashOperations)
	resp := doRequest(t, app, tokenFor(t, "vendas"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Concessão extra no token libera a capacidade fora do padrão do papel.
func TestRequireCapability_ConcessaoExtraLibera(t *testing.T) {
	app := buildCapApp(permission.CashOperations)
	resp := doRequest(t, app, tokenFor(t, "vendas", "cash_operations"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"concessão extra no token deve liberar o acesso")
}

// Registrar movimentação exige cash_operations; a listagem atende também quem
// vende. Mesma divisão usada nas rotas /transactions.
func TestRequireCapability_RegistroDeCaixaRestritoListagemCompartilhada(t *testing.T) {
	app := fiber.New()
	app.Post("/transactions",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(permission.CashOperations),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) },
	)
	app.Get("/transactions",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAnyCapability(permission.CashOperations, permission.RegisterSales),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	send := func(method, token string) int {
		req := httptest.NewRequest(method, "/transactions", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	vendas := tokenFor(t, "vendas")
	reception := tokenFor(t, "reception")

	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, vendas),
		"vendas não registra entrada/saída de caixa")
	assert.Equal(t, http.StatusOK, send(http.MethodGet, vendas),
		"vendas lista as próprias movimentações")
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, reception))
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes AuthMiddleware — extração dos claims
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraiClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":     apphttp.GetUserID(c),
			"username":    apphttp.GetUsername(c),
			"role":        apphttp.GetRole(c),
			"permissions": apphttp.GetPermissions(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "reception", "register_sales"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID      string   `json:"user_id"`
		Username    string   `json:"username"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, testUsername, body.Username)
	assert.Equal(t, "reception", body.Role)
	assert.Equal(t, []string{"register_sales"}, body.Permissions)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes JWT pkg — integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "manager", []string{"manage_bills"}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUsername, claims.Username)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, []string{"manage_bills"}, claims.Permissions)
}

func TestJWT_TokenExpirado_RetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "admin", nil, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestJWT_SecretIncorreto_RetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "admin", nil, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}
