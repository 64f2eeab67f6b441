package main

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sanjose-park/backend/internal/auth/service"
	"sanjose-park/backend/internal/config"
	"sanjose-park/backend/internal/db"
	"sanjose-park/backend/internal/db/migrate"
	"sanjose-park/backend/internal/mailer"
	newsrepo "sanjose-park/backend/internal/news/repository"
	"sanjose-park/backend/internal/security"
	"sanjose-park/backend/internal/server"
	userrepo "sanjose-park/backend/internal/user/repository"
	warehouserepo "sanjose-park/backend/internal/warehouse/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	if err := migrate.Run(cfg.DatabaseURL, "up"); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL())
	mail := mailer.New(mailer.NewSMTPTransport(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom,
	), logger)

	users := userrepo.NewPostgresRepository(conn)
	auth := service.NewAuthService(users, hasher, tokens, mail, logger)

	app := server.New(server.Deps{
		Config:     cfg,
		DB:         conn,
		Users:      users,
		News:       newsrepo.NewPostgresRepository(conn),
		Warehouses: warehouserepo.NewPostgresRepository(conn),
		Auth:       auth,
		Hasher:     hasher,
		Tokens:     tokens,
		Contact:    mail,
		Log:        logger,
	})

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down HTTP server")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	logger.Info("HTTP server stopped")
}
