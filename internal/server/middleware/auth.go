// Package middleware holds the request-level guards shared by all protected
// routes.
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sanjose-park/backend/internal/security"
)

// ClaimsKey is the c.Locals key under which RequireAuth stores the verified
// token claims.
const ClaimsKey = "claims"

// RequireAuth verifies the Authorization bearer token and stores its claims
// in the request locals. A missing or malformed header is rejected before any
// signature work.
func RequireAuth(tokens *security.TokenProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "No se proporcionó un token.",
			})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Formato de token inválido.",
			})
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, security.ErrExpiredToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Token expirado.",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token inválido o no autorizado.",
			})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the verified claims carry
// one of the given roles. Must run after RequireAuth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(*security.Claims)
		if !ok || claims.Role == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Acceso denegado. Rol de usuario no definido.",
			})
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Acceso denegado. Su rol no tiene permiso para esta acción.",
		})
	}
}
