// Package handler serves the liveness probe used by the frontend and by the
// hosting platform.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

// NewHealthHandler returns a handler probing the given store. db may be nil;
// the probe then only confirms the process is serving.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Register(api fiber.Router) {
	api.Get("/ping", h.Ping)
}

func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "La base de datos no está disponible.",
			})
		}
	}
	return c.JSON(fiber.Map{"message": "pong"})
}
