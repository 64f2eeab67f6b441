// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the admin user (admin) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"sanjose-park/backend/internal/config"
	"sanjose-park/backend/internal/db"
	newsdomain "sanjose-park/backend/internal/news/domain"
	newsrepo "sanjose-park/backend/internal/news/repository"
	"sanjose-park/backend/internal/security"
	userdomain "sanjose-park/backend/internal/user/domain"
	userrepo "sanjose-park/backend/internal/user/repository"
	warehousedomain "sanjose-park/backend/internal/warehouse/domain"
	warehouserepo "sanjose-park/backend/internal/warehouse/repository"
)

const (
	adminHandle   = "admin"
	adminEmail    = "admin@pisanjose.com"
	adminPassword = "admin123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)

	existing, err := users.GetByHandle(ctx, adminHandle)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash(adminPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()

	if err := users.Create(ctx, &userdomain.User{
		ID:           uuid.New().String(),
		Handle:       adminHandle,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         userdomain.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		log.Fatalf("create admin user: %v", err)
	}

	news := newsrepo.NewPostgresRepository(conn)
	if err := news.Create(ctx, &newsdomain.Article{
		ID:        uuid.New().String(),
		Title:     "Bienvenidos al Parque Industrial San José",
		Slug:      "bienvenidos-al-parque",
		Content:   "El parque industrial abre sus puertas con bodegas disponibles para renta.",
		Category:  "anuncios",
		Status:    newsdomain.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("create sample article: %v", err)
	}

	warehouses := warehouserepo.NewPostgresRepository(conn)
	if err := warehouses.Create(ctx, &warehousedomain.Warehouse{
		ID:          uuid.New().String(),
		Name:        "Bodega A-1",
		Slug:        "bodega-a-1",
		Description: "Bodega de 500 m2 con andén de carga y oficina.",
		Sector:      "logística",
		Address:     "Parque Industrial San José, Nave A",
		Status:      warehousedomain.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		log.Fatalf("create sample warehouse: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Admin login: %s / %s\n", adminHandle, adminPassword)
}
