// Package handler serves the combined landing-page payload.
package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	newsdomain "sanjose-park/backend/internal/news/domain"
	newsrepo "sanjose-park/backend/internal/news/repository"
	warehousedomain "sanjose-park/backend/internal/warehouse/domain"
	warehouserepo "sanjose-park/backend/internal/warehouse/repository"
)

type HomeHandler struct {
	news       newsrepo.Repository
	warehouses warehouserepo.Repository
	log        *slog.Logger
}

func NewHomeHandler(news newsrepo.Repository, warehouses warehouserepo.Repository, log *slog.Logger) *HomeHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HomeHandler{news: news, warehouses: warehouses, log: log}
}

func (h *HomeHandler) Register(api fiber.Router) {
	api.Get("/dashboard-home", h.Dashboard)
}

// Dashboard returns the news and warehouse listings the public site renders
// in one round trip.
func (h *HomeHandler) Dashboard(c *fiber.Ctx) error {
	news, err := h.news.List(c.Context())
	if err != nil {
		h.log.Error("dashboard news", "error", err)
		return internalError(c)
	}
	warehouses, err := h.warehouses.List(c.Context())
	if err != nil {
		h.log.Error("dashboard warehouses", "error", err)
		return internalError(c)
	}
	if news == nil {
		news = []*newsdomain.Article{}
	}
	if warehouses == nil {
		warehouses = []*warehousedomain.Warehouse{}
	}
	return c.JSON(fiber.Map{
		"news":      news,
		"warehouse": warehouses,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Error interno del servidor",
	})
}
