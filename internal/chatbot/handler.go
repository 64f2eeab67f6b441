package chatbot

import "github.com/gofiber/fiber/v2"

type request struct {
	Option string `json:"option"`
}

// RegisterRoutes mounts the chatbot endpoint.
func RegisterRoutes(api fiber.Router) {
	api.Post("/chatbot", func(c *fiber.Ctx) error {
		var req request
		// A malformed body behaves like an empty selection.
		_ = c.BodyParser(&req)
		return c.JSON(Respond(req.Option))
	})
}
