// Package handler exposes the authentication endpoints over HTTP.
package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"sanjose-park/backend/internal/auth/service"
	"sanjose-park/backend/internal/security"
	"sanjose-park/backend/internal/server/middleware"
	"sanjose-park/backend/internal/user/domain"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{auth: auth, log: log}
}

// Register mounts the auth routes on the given router. The 2FA toggle is the
// only route behind the auth gate; login and register are public.
func (h *AuthHandler) Register(api fiber.Router, gate fiber.Handler) {
	api.Post("/auth/login", h.Login)
	api.Post("/auth/register", h.RegisterAccount)
	api.Patch("/auth/2fa", gate, h.SetTwoFactor)
}

type loginRequest struct {
	Handle   string `json:"nombre_usuario"`
	Password string `json:"contrasena"`
	Code     string `json:"codigo"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}

	res, err := h.auth.Login(c.Context(), req.Handle, req.Password, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Credenciales inválidas.",
			})
		case errors.Is(err, service.ErrAccountInactive):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Tu cuenta está inactiva. Contacta al administrador.",
			})
		case errors.Is(err, service.ErrInvalidOrExpiredCode):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Código inválido o expirado.",
			})
		default:
			h.log.Error("login failed", "handle", req.Handle, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error interno del servidor.",
			})
		}
	}

	if res.TwoFactorRequired {
		return c.JSON(fiber.Map{
			"message":           "Se envió un código de verificación a tu correo.",
			"twoFactorRequired": true,
		})
	}
	return c.JSON(fiber.Map{
		"message":           "Inicio de sesión exitoso.",
		"token":             res.Token,
		"user":              res.User,
		"twoFactorRequired": false,
	})
}

type registerRequest struct {
	Handle   string `json:"nombre_usuario"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
	Role     string `json:"rol"`
}

func (h *AuthHandler) RegisterAccount(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}

	sum, err := h.auth.Register(c.Context(), req.Handle, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Todos los campos son obligatorios.",
			})
		case errors.Is(err, service.ErrAccountExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "El nombre de usuario o el email ya están registrados.",
			})
		default:
			h.log.Error("register failed", "handle", req.Handle, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error interno del servidor al registrar usuario.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuario registrado exitosamente",
		"user":    sum,
	})
}

type twoFactorRequest struct {
	Enable bool `json:"enable"`
}

// SetTwoFactor toggles email 2FA for the authenticated account. The account
// id comes from the token claims, never from the body.
func (h *AuthHandler) SetTwoFactor(c *fiber.Ctx) error {
	claims, ok := c.Locals(middleware.ClaimsKey).(*security.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Token inválido o no autorizado.",
		})
	}

	var req twoFactorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}

	if err := h.auth.SetTwoFactor(c.Context(), claims.Subject, req.Enable); err != nil {
		h.log.Error("2fa toggle failed", "user_id", claims.Subject, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor.",
		})
	}

	msg := "Verificación en dos pasos desactivada."
	if req.Enable {
		msg = "Verificación en dos pasos activada."
	}
	return c.JSON(fiber.Map{"message": msg, "twoFactorEnabled": req.Enable})
}
