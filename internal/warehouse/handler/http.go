// Package handler exposes the warehouse CRUD endpoints.
package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sanjose-park/backend/internal/warehouse/domain"
	"sanjose-park/backend/internal/warehouse/repository"
)

type WarehouseHandler struct {
	repo repository.Repository
	log  *slog.Logger
}

func NewWarehouseHandler(repo repository.Repository, log *slog.Logger) *WarehouseHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WarehouseHandler{repo: repo, log: log}
}

// Register mounts the warehouse routes. Reads are public; writes run behind
// the given guard chain.
func (h *WarehouseHandler) Register(api fiber.Router, write ...fiber.Handler) {
	api.Get("/warehouses", h.List)
	api.Get("/warehouses/:id", h.Get)
	api.Post("/warehouses", append(write, h.Create)...)
	api.Patch("/warehouses/:id", append(write, h.Update)...)
	api.Delete("/warehouses/:id", append(write, h.Delete)...)
}

func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	warehouses, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("list warehouses", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al obtener bodegas.",
		})
	}
	if warehouses == nil {
		warehouses = []*domain.Warehouse{}
	}
	return c.JSON(warehouses)
}

func (h *WarehouseHandler) Get(c *fiber.Ctx) error {
	w, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("get warehouse", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al obtener bodega.",
		})
	}
	if w == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Bodega no encontrada.",
		})
	}
	return c.JSON(w)
}

type createRequest struct {
	Name         string `json:"nombre"`
	Slug         string `json:"slug"`
	Description  string `json:"descripcion"`
	Sector       string `json:"sector"`
	LogoURL      string `json:"logotipo_url"`
	Website      string `json:"sitio_web"`
	ContactEmail string `json:"contacto_email"`
	ContactPhone string `json:"contacto_telefono"`
	Address      string `json:"direccion_bodega"`
	Status       string `json:"estado"`
}

func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}
	if req.Name == "" || req.Slug == "" || req.Description == "" || req.Sector == "" || req.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Faltan campos obligatorios: nombre, slug, descripcion, sector, direccion_bodega.",
		})
	}
	if !domain.ValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Estado de bodega no válido.",
		})
	}

	now := time.Now().UTC()
	w := &domain.Warehouse{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Sector:       req.Sector,
		LogoURL:      req.LogoURL,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Status:       req.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.repo.Create(c.Context(), w); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Ya existe una bodega con ese nombre o slug. Por favor, elige uno diferente.",
			})
		}
		h.log.Error("create warehouse", "slug", req.Slug, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al crear bodega.",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// patchableFields are the body keys Update accepts; anything else is ignored.
var patchableFields = []string{"nombre", "slug", "descripcion", "sector",
	"logotipo_url", "sitio_web", "contacto_email", "contacto_telefono",
	"direccion_bodega", "estado"}

func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Debe proporcionar al menos un campo para actualizar.",
		})
	}

	changes := map[string]any{}
	for _, key := range patchableFields {
		v, ok := body[key]
		if !ok {
			continue
		}
		if key == "nombre" {
			if s, _ := v.(string); s == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "El nombre es obligatorio y no puede ser nulo o vacío.",
				})
			}
		}
		if key == "estado" {
			if s, _ := v.(string); !domain.ValidStatus(s) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Estado de bodega no válido.",
				})
			}
		}
		changes[key] = v
	}
	if len(changes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No se proporcionaron campos válidos para actualizar.",
		})
	}

	updated, err := h.repo.Update(c.Context(), c.Params("id"), changes)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Ya existe una bodega con ese nombre o slug. Por favor, elige uno diferente.",
			})
		}
		h.log.Error("update warehouse", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al actualizar bodega.",
		})
	}
	if updated == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Bodega no encontrada para actualizar.",
		})
	}
	return c.JSON(updated)
}

func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	found, err := h.repo.Delete(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("delete warehouse", "id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al eliminar bodega.",
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Bodega no encontrada para eliminar.",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
