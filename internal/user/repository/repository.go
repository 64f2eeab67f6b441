package repository

import (
	"context"
	"errors"
	"time"

	"sanjose-park/backend/internal/user/domain"
)

// DuplicateError reports a unique-constraint violation. Constraint carries
// the violated constraint name so handlers can tell handle from email.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return "duplicate value for " + e.Constraint
}

// IsDuplicate reports whether err is a unique-constraint violation and, if
// so, returns it.
func IsDuplicate(err error) (*DuplicateError, bool) {
	var d *DuplicateError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// Repository is the user store. Get methods return (nil, nil) when no row
// matches; write methods returning bool report whether a row was affected.
type Repository interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id string, changes map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// SetChallenge stores a pending 2FA challenge on the account,
	// overwriting any prior one.
	SetChallenge(ctx context.Context, id, code string, expiresAt time.Time) error
	// ClearChallenge removes the pending 2FA challenge, if any.
	ClearChallenge(ctx context.Context, id string) error
	// SetTwoFactorEnabled toggles 2FA; disabling also clears any pending challenge.
	SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error
}
