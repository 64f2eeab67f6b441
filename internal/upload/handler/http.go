// Package handler stores dashboard image uploads and serves back their URLs.
package handler

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MaxImageSize caps a single upload at 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

type UploadHandler struct {
	dir     string
	baseURL string
	log     *slog.Logger
}

// NewUploadHandler stores files under dir and builds public URLs from
// baseURL.
func NewUploadHandler(dir, baseURL string, log *slog.Logger) *UploadHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UploadHandler{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Register mounts the upload route behind the given guard chain.
func (h *UploadHandler) Register(api fiber.Router, guards ...fiber.Handler) {
	api.Post("/upload", append(guards, h.Upload)...)
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No se ha subido ningún archivo o el formato no es compatible. Asegúrese de subir un archivo de imagen válido.",
		})
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Solo se permiten archivos de imagen!",
		})
	}
	if file.Size > MaxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "El archivo excede el tamaño máximo permitido de 5MB.",
		})
	}

	// uuid names avoid collisions and path tricks in the client filename.
	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.dir, name)); err != nil {
		h.log.Error("save upload", "name", name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno del servidor al guardar la imagen.",
		})
	}

	imageURL := h.baseURL + "/uploads/" + name
	h.log.Info("image uploaded", "url", imageURL, "size", file.Size)
	return c.JSON(fiber.Map{"imageUrl": imageURL})
}
