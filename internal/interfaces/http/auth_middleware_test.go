package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	apphttp "github.com/jhoicas/medstore-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/medstore-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testMerchantID = "MERCH1700000000000ABCD"
	testIssuer     = "medstore-test"
	testExpMin     = 60
)

// stubMerchants resuelve comercios desde un mapa id -> error.
type stubMerchants map[string]error

func (s stubMerchants) ActiveMerchant(_ context.Context, merchantID string) (*entity.Merchant, error) {
	err, ok := s[merchantID]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return &entity.Merchant{ID: merchantID, IsActive: true}, nil
}

func buildTestApp(merchants apphttp.MerchantResolver) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, merchants), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"merchant_id": apphttp.GetMerchantID(c)})
	})
	return app
}

func bearer(t *testing.T, merchantID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, merchantID, "owner@store.in", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ComercioActivo(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, stubMerchants{testMerchantID: nil}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"merchant_id": apphttp.GetMerchantID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, testMerchantID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testMerchantID, body["merchant_id"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildTestApp(stubMerchants{
		testMerchantID: nil,
		"MERCH-OFF":    domain.ErrForbidden,
	})

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin header", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema incorrecto", "Basic abc", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"comercio inexistente", bearer(t, "MERCH-GONE"), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"comercio inactivo", bearer(t, "MERCH-OFF"), http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doProtected(t, app, tc.header)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_SecretDistinto(t *testing.T) {
	app := buildTestApp(stubMerchants{testMerchantID: nil})
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testMerchantID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, body := doProtected(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body.Code)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(stubMerchants{testMerchantID: nil})
	tok, err := pkgjwt.Generate(testJWTSecret, testMerchantID, "", testIssuer, -1)
	require.NoError(t, err)

	resp, _ := doProtected(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
