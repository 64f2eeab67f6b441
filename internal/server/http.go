// Package server wires feature handlers into a single fiber application.
package server

import (
	"database/sql"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	authhandler "sanjose-park/backend/internal/auth/handler"
	authservice "sanjose-park/backend/internal/auth/service"
	"sanjose-park/backend/internal/chatbot"
	"sanjose-park/backend/internal/config"
	contacthandler "sanjose-park/backend/internal/contact/handler"
	healthhandler "sanjose-park/backend/internal/health/handler"
	homehandler "sanjose-park/backend/internal/home/handler"
	newshandler "sanjose-park/backend/internal/news/handler"
	newsrepo "sanjose-park/backend/internal/news/repository"
	"sanjose-park/backend/internal/security"
	"sanjose-park/backend/internal/server/middleware"
	uploadhandler "sanjose-park/backend/internal/upload/handler"
	userhandler "sanjose-park/backend/internal/user/handler"
	userrepo "sanjose-park/backend/internal/user/repository"
	warehousehandler "sanjose-park/backend/internal/warehouse/handler"
	warehouserepo "sanjose-park/backend/internal/warehouse/repository"
)

// Deps carries everything the HTTP layer needs. All fields are required
// except DB, which the health check tolerates as nil.
type Deps struct {
	Config     *config.Config
	DB         *sql.DB
	Users      userrepo.Repository
	News       newsrepo.Repository
	Warehouses warehouserepo.Repository
	Auth       *authservice.AuthService
	Hasher     *security.Hasher
	Tokens     *security.TokenProvider
	Contact    contacthandler.Sender
	Log        *slog.Logger
}

// New builds the fiber app and mounts every route under /api. Write
// operations on news and warehouses require the admin or editor role;
// user administration is admin only.
func New(deps Deps) *fiber.App {
	cfg := deps.Config
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "sanjose-park",
		BodyLimit:             2 * uploadhandler.MaxImageSize,
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOriginsList(), ","),
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Static("/uploads", cfg.UploadDir)

	authed := middleware.RequireAuth(deps.Tokens)
	editors := []fiber.Handler{authed, middleware.RequireRoles("admin", "editor")}
	admins := []fiber.Handler{authed, middleware.RequireRoles("admin")}

	api := app.Group("/api")

	var pinger healthhandler.Pinger
	if deps.DB != nil {
		pinger = deps.DB
	}
	healthhandler.NewHealthHandler(pinger).Register(api)
	authhandler.NewAuthHandler(deps.Auth, log).Register(api, authed)
	userhandler.NewUserHandler(deps.Users, deps.Hasher, log).Register(api, admins...)
	newshandler.NewNewsHandler(deps.News, log).Register(api, editors...)
	warehousehandler.NewWarehouseHandler(deps.Warehouses, log).Register(api, editors...)
	homehandler.NewHomeHandler(deps.News, deps.Warehouses, log).Register(api)
	chatbot.RegisterRoutes(api)
	contacthandler.NewContactHandler(deps.Contact, cfg.ContactRecipient, log).Register(api)
	uploadhandler.NewUploadHandler(cfg.UploadDir, cfg.PublicBaseURL, log).Register(api)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Endpoint no encontrado",
		})
	})

	return app
}
