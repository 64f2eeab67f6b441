// Package handler exposes the admin-only user management endpoints.
package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sanjose-park/backend/internal/security"
	"sanjose-park/backend/internal/user/domain"
	"sanjose-park/backend/internal/user/repository"
)

type UserHandler struct {
	repo   repository.Repository
	hasher *security.Hasher
	log    *slog.Logger
}

func NewUserHandler(repo repository.Repository, hasher *security.Hasher, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{repo: repo, hasher: hasher, log: log}
}

// Register mounts the user management routes behind the given guard chain.
// Every route is protected; there are no public reads here.
func (h *UserHandler) Register(api fiber.Router, guards ...fiber.Handler) {
	api.Get("/users-admin", append(guards, h.List)...)
	api.Get("/users-admin/:id", append(guards, h.Get)...)
	api.Post("/users-admin", append(guards, h.Create)...)
	api.Patch("/users-admin/:id", append(guards, h.Update)...)
	api.Delete("/users-admin/:id", append(guards, h.Delete)...)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("list users", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al obtener usuarios.",
		})
	}
	summaries := make([]*domain.Summary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summarize())
	}
	return c.JSON(summaries)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	u, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("get user", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al obtener usuario por ID.",
		})
	}
	if u == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Usuario no encontrado.",
		})
	}
	return c.JSON(u.Summarize())
}

type createRequest struct {
	Handle   string `json:"nombre_usuario"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
	Role     string `json:"rol"`
	Active   *bool  `json:"activo"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}

	handle := strings.TrimSpace(req.Handle)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	role := strings.TrimSpace(req.Role)

	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "El nombre de usuario es obligatorio y no puede estar vacío.",
		})
	}
	if !domain.ValidEmail(email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "El email es obligatorio y debe tener un formato válido.",
		})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "La contraseña es obligatoria y no puede estar vacía.",
		})
	}
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "El rol es obligatorio y no puede estar vacío.",
		})
	}
	if req.Active == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "El campo \"activo\" es obligatorio y debe ser un valor booleano (true o false).",
		})
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("hash password", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al crear usuario.",
		})
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		Handle:       handle,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.Role(role),
		Active:       *req.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.repo.Create(c.Context(), u); err != nil {
		if dup, ok := repository.IsDuplicate(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": duplicateCreateMessage(dup),
			})
		}
		h.log.Error("create user", "handle", handle, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al crear usuario.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":             u.ID,
		"nombre_usuario": u.Handle,
		"email":          u.Email,
		"rol":            u.Role,
		"activo":         u.Active,
		"message":        "Usuario creado exitosamente.",
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}

	changes := map[string]any{}
	for key, value := range body {
		switch key {
		case "nombre_usuario":
			s := strings.TrimSpace(asString(value))
			if s == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "El nombre de usuario no puede estar vacío.",
				})
			}
			changes[key] = s
		case "email":
			s := strings.TrimSpace(strings.ToLower(asString(value)))
			if !domain.ValidEmail(s) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "El email debe ser válido y no puede estar vacío.",
				})
			}
			changes[key] = s
		case "contrasena":
			s := asString(value)
			if strings.TrimSpace(s) == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "La contraseña no puede estar vacía.",
				})
			}
			hash, err := h.hasher.Hash(s)
			if err != nil {
				h.log.Error("hash password", "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Error interno del servidor al actualizar usuario.",
				})
			}
			changes[key] = hash
		case "rol":
			s := strings.TrimSpace(asString(value))
			if s == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "El rol no puede estar vacío.",
				})
			}
			changes[key] = s
		case "activo":
			b, ok := value.(bool)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "El campo \"activo\" debe ser un booleano.",
				})
			}
			changes[key] = b
		}
	}
	if len(changes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No se proporcionaron campos válidos para actualizar o todos están vacíos.",
		})
	}

	found, err := h.repo.Update(c.Context(), c.Params("id"), changes)
	if err != nil {
		if dup, ok := repository.IsDuplicate(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": duplicateUpdateMessage(dup),
			})
		}
		h.log.Error("update user", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al actualizar usuario.",
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Usuario no encontrado o no se realizaron cambios.",
		})
	}
	return c.JSON(fiber.Map{"message": "Usuario actualizado correctamente."})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	found, err := h.repo.Delete(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("delete user", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al eliminar usuario.",
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Usuario no encontrado.",
		})
	}
	return c.JSON(fiber.Map{"message": "Usuario eliminado correctamente."})
}

func duplicateCreateMessage(dup *repository.DuplicateError) string {
	switch {
	case strings.Contains(dup.Constraint, "email"):
		return "El email proporcionado ya está registrado."
	case strings.Contains(dup.Constraint, "nombre_usuario"):
		return "El nombre de usuario ya está en uso."
	}
	return "Entrada duplicada. Revise los datos."
}

func duplicateUpdateMessage(dup *repository.DuplicateError) string {
	switch {
	case strings.Contains(dup.Constraint, "email"):
		return "El nuevo email proporcionado ya está registrado por otro usuario."
	case strings.Contains(dup.Constraint, "nombre_usuario"):
		return "El nuevo nombre de usuario ya está en uso por otro usuario."
	}
	return "Entrada duplicada al actualizar. Revise los datos."
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
