// Package handler exposes the public contact-form endpoint.
package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Sender forwards a contact-form submission to the site owner.
type Sender interface {
	SendContactMessage(recipient, name, email, message string) error
}

type ContactHandler struct {
	sender    Sender
	recipient string
	log       *slog.Logger
}

func NewContactHandler(sender Sender, recipient string, log *slog.Logger) *ContactHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ContactHandler{sender: sender, recipient: recipient, log: log}
}

func (h *ContactHandler) Register(api fiber.Router) {
	api.Post("/contact", h.Submit)
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Por favor, completa todos los campos.",
		})
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Por favor, completa todos los campos.",
		})
	}

	if err := h.sender.SendContactMessage(h.recipient, req.Name, req.Email, req.Message); err != nil {
		h.log.Error("send contact email", "from", req.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Hubo un error al enviar el mensaje. Inténtalo de nuevo más tarde.",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Mensaje enviado con éxito.",
	})
}
