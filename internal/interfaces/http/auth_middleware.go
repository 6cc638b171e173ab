package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/pkg/jwt"
)

// LocalMerchantID key en c.Locals con el comercio autenticado.
const LocalMerchantID = "merchant_id"

// MerchantResolver comprueba que el comercio del token siga existiendo y activo.
type MerchantResolver interface {
	ActiveMerchant(ctx context.Context, merchantID string) (*entity.Merchant, error)
}

// AuthMiddleware valida el Bearer Token JWT, verifica que el comercio esté activo
// y deja su id en c.Locals(LocalMerchantID).
func AuthMiddleware(jwtSecret string, merchants MerchantResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.MerchantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}

		if _, err := merchants.ActiveMerchant(c.Context(), claims.MerchantID); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "merchant not found"})
			}
			return writeError(c, err)
		}
		c.Locals(LocalMerchantID, claims.MerchantID)
		return c.Next()
	}
}

// GetMerchantID devuelve el comercio del contexto (después del middleware de auth).
func GetMerchantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalMerchantID).(string)
	return s
}
