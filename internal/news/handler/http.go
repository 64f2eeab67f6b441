// Package handler exposes the news CRUD endpoints.
package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sanjose-park/backend/internal/news/domain"
	"sanjose-park/backend/internal/news/repository"
)

type NewsHandler struct {
	repo repository.Repository
	log  *slog.Logger
}

func NewNewsHandler(repo repository.Repository, log *slog.Logger) *NewsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &NewsHandler{repo: repo, log: log}
}

// Register mounts the news routes. Reads are public; writes run behind the
// given guard chain.
func (h *NewsHandler) Register(api fiber.Router, write ...fiber.Handler) {
	api.Get("/dashboard-news", h.List)
	api.Get("/dashboard-news/:id", h.Get)
	api.Post("/dashboard-news", append(write, h.Create)...)
	api.Patch("/dashboard-news/:id", append(write, h.Update)...)
	api.Delete("/dashboard-news/:id", append(write, h.Delete)...)
}

func (h *NewsHandler) List(c *fiber.Ctx) error {
	articles, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("list news", "error", err)
		return internalError(c)
	}
	if articles == nil {
		articles = []*domain.Article{}
	}
	return c.JSON(articles)
}

func (h *NewsHandler) Get(c *fiber.Ctx) error {
	article, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("get news", "id", c.Params("id"), "error", err)
		return internalError(c)
	}
	if article == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Noticia no encontrada",
		})
	}
	return c.JSON(article)
}

type createRequest struct {
	Title         string `json:"titulo"`
	Slug          string `json:"slug"`
	Summary       string `json:"resumen"`
	Content       string `json:"contenido"`
	FeaturedImage string `json:"imagen_destacada"`
	Category      string `json:"categoria"`
	Author        string `json:"autor"`
	Status        string `json:"estado"`
}

func (h *NewsHandler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}
	if req.Title == "" || req.Slug == "" || req.Content == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Faltan datos obligatorios",
		})
	}
	if !domain.ValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Estado no válido",
		})
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Slug:          req.Slug,
		Summary:       req.Summary,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Category:      req.Category,
		Author:        req.Author,
		Status:        req.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.repo.Create(c.Context(), article); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Ya existe una noticia con ese slug.",
			})
		}
		h.log.Error("create news", "slug", req.Slug, "error", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// patchableFields are the body keys Update accepts; anything else is ignored.
var patchableFields = []string{"titulo", "slug", "resumen", "contenido",
	"imagen_destacada", "categoria", "autor", "estado"}

func (h *NewsHandler) Update(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cuerpo de la solicitud inválido.",
		})
	}
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Debe proporcionar al menos un campo para actualizar",
		})
	}

	changes := map[string]any{}
	for _, key := range patchableFields {
		v, ok := body[key]
		if !ok {
			continue
		}
		if key == "titulo" {
			if s, _ := v.(string); s == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "El título es obligatorio y no puede ser nulo",
				})
			}
		}
		if key == "estado" {
			if s, _ := v.(string); !domain.ValidStatus(s) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Estado no válido",
				})
			}
		}
		changes[key] = v
	}
	if len(changes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No se proporcionaron campos válidos para actualizar",
		})
	}

	found, err := h.repo.Update(c.Context(), c.Params("id"), changes)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Ya existe una noticia con ese slug.",
			})
		}
		h.log.Error("update news", "id", c.Params("id"), "error", err)
		return internalError(c)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Noticia no encontrada",
		})
	}
	return c.JSON(fiber.Map{"message": "Noticia actualizada correctamente"})
}

func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	found, err := h.repo.Delete(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("delete news", "id", c.Params("id"), "error", err)
		return internalError(c)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Noticia no encontrada",
		})
	}
	return c.JSON(fiber.Map{"message": "Noticia eliminada correctamente"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Error interno del servidor",
	})
}
