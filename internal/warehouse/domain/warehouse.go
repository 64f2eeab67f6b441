// Package domain holds the warehouse listing model.
package domain

import "time"

// Estado values a listing can be in.
const (
	StatusActive   = "activa"
	StatusInactive = "inactiva"
	StatusPending  = "pendiente"
)

// ValidStatus reports whether s is a recognized listing status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Warehouse is a park tenant listing shown on the public site and managed
// from the dashboard.
type Warehouse struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Slug         string    `json:"slug"`
	Description  string    `json:"descripcion"`
	Sector       string    `json:"sector"`
	LogoURL      string    `json:"logotipo_url"`
	Website      string    `json:"sitio_web"`
	ContactEmail string    `json:"contacto_email"`
	ContactPhone string    `json:"contacto_telefono"`
	Address      string    `json:"direccion_bodega"`
	Status       string    `json:"estado"`
	CreatedAt    time.Time `json:"fecha_creacion"`
	UpdatedAt    time.Time `json:"fecha_actualizacion"`
}
