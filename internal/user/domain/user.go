package domain

import (
	"errors"
	"regexp"
	"time"
)

// Role tags an account for route authorization. The set is open: new roles
// can appear without a schema change, and the authorization gate only does
// set-membership checks on the string value.
type Role string

// Roles the application currently recognizes.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "visualizador"
)

// DefaultRole is assigned on self-registration when no role is given.
const DefaultRole = RoleViewer

// User is an account on the admin site. The pending 2FA challenge lives on
// the record itself as two nullable fields: a non-empty TwoFactorCode implies
// a meaningful TwoFactorExpiresAt, and at most one challenge is outstanding
// at a time (a new one overwrites the old).
type User struct {
	ID           string
	Handle       string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool

	TwoFactorEnabled   bool
	TwoFactorCode      string    // empty when no challenge is pending
	TwoFactorExpiresAt time.Time // zero when no challenge is pending

	CreatedAt time.Time
	UpdatedAt time.Time
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. Same loose check
// the frontend applies; the mail server has the final word.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if u.Handle == "" {
		return errors.New("nombre_usuario is required")
	}
	if !ValidEmail(u.Email) {
		return errors.New("email is invalid")
	}
	if u.PasswordHash == "" {
		return errors.New("contrasena is required")
	}
	if u.Role == "" {
		u.Role = DefaultRole
	}
	return nil
}

// HasPendingChallenge reports whether a 2FA challenge is outstanding.
func (u *User) HasPendingChallenge() bool {
	return u.TwoFactorCode != ""
}

// Summary is the caller-facing projection of a user: never includes the
// password hash or challenge fields.
type Summary struct {
	ID     string `json:"id"`
	Handle string `json:"nombre_usuario"`
	Email  string `json:"email"`
	Role   Role   `json:"rol"`
	Active bool   `json:"activo"`
}

// Summarize returns the caller-facing projection of u.
func (u *User) Summarize() *Summary {
	return &Summary{
		ID:     u.ID,
		Handle: u.Handle,
		Email:  u.Email,
		Role:   u.Role,
		Active: u.Active,
	}
}
