// Package domain holds the news article model.
package domain

import "time"

// Estado values an article can be in.
const (
	StatusDraft     = "borrador"
	StatusPublished = "publicado"
	StatusArchived  = "archivado"
)

// ValidStatus reports whether s is a recognized article status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Article is a news entry shown on the public site and managed from the
// dashboard.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"titulo"`
	Slug          string    `json:"slug"`
	Summary       string    `json:"resumen"`
	Content       string    `json:"contenido"`
	FeaturedImage string    `json:"imagen_destacada"`
	Category      string    `json:"categoria"`
	Author        string    `json:"autor"`
	Status        string    `json:"estado"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
