package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanjose-park/backend/internal/auth"
	"sanjose-park/backend/internal/security"
	"sanjose-park/backend/internal/user/domain"
	"sanjose-park/backend/internal/user/repository"
)

// Sentinel errors for the auth service; the HTTP handler maps them to status codes.
var (
	// ErrInvalidCredentials covers both unknown handle and wrong password so
	// callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	// ErrInvalidOrExpiredCode is returned for a wrong, stale, or absent
	// challenge code. Any failed verification also clears the stored
	// challenge, so the caller must request a fresh code.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrMissingFields        = errors.New("missing required fields")
	ErrAccountExists        = errors.New("handle or email already registered")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SetChallenge(ctx context.Context, id, code string, expiresAt time.Time) error
	ClearChallenge(ctx context.Context, id string) error
	SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error
}

// CodeMailer delivers a login challenge code. Implementations must not block
// the caller on delivery; see mailer.SendAsync.
type CodeMailer interface {
	SendTwoFactorCode(to, handle, code string, validFor time.Duration)
}

// LoginResult is the outcome of a successful Login call. When
// TwoFactorRequired is true a challenge was just issued and the other fields
// are empty; the client must repeat the call with the emailed code.
type LoginResult struct {
	TwoFactorRequired bool
	Token             string
	ExpiresAt         time.Time
	User              *domain.Summary
}

// AuthService implements registration, the login/2FA flow, and the
// self-service 2FA toggle.
type AuthService struct {
	users  UserRepo
	hasher *security.Hasher
	tokens *security.TokenProvider
	mailer CodeMailer
	log    *slog.Logger
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(users UserRepo, hasher *security.Hasher, tokens *security.TokenProvider, mailer CodeMailer, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, mailer: mailer, log: log}
}

// Login runs the credential check and, for 2FA-enabled accounts, the
// challenge round-trip. The flow branches on whether code was supplied:
//
//   - 2FA disabled: valid handle+password mint a session token directly.
//   - 2FA enabled, no code: a fresh 6-digit code is stored on the account
//     (overwriting any prior one), emailed fire-and-forget, and the call
//     returns TwoFactorRequired; mail failures are logged, never surfaced.
//   - 2FA enabled, code supplied: exact match against the stored code and
//     its expiry. The stored challenge is cleared on every verification
//     attempt, success or not, so each code is single-use.
func (s *AuthService) Login(ctx context.Context, handle, password, code string) (*LoginResult, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		// Terminal before the hash compare; an inactive account's password
		// is never evaluated.
		return nil, ErrAccountInactive
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.TwoFactorEnabled {
		return s.issue(user)
	}

	if code == "" {
		return s.issueChallenge(ctx, user)
	}
	return s.verifyChallenge(ctx, user, code)
}

func (s *AuthService) issueChallenge(ctx context.Context, user *domain.User) (*LoginResult, error) {
	code, err := auth.GenerateChallengeCode()
	if err != nil {
		return nil, fmt.Errorf("generate challenge code: %w", err)
	}
	expiresAt := time.Now().UTC().Add(auth.ChallengeTTL)
	if err := s.users.SetChallenge(ctx, user.ID, code, expiresAt); err != nil {
		return nil, err
	}
	// Fire-and-forget: the response does not wait for (or depend on) delivery.
	s.mailer.SendTwoFactorCode(user.Email, user.Handle, code, auth.ChallengeTTL)
	return &LoginResult{TwoFactorRequired: true}, nil
}

func (s *AuthService) verifyChallenge(ctx context.Context, user *domain.User, code string) (*LoginResult, error) {
	// Single attempt per code: whatever happens next, the stored challenge
	// is gone.
	if err := s.users.ClearChallenge(ctx, user.ID); err != nil {
		return nil, err
	}
	if !user.HasPendingChallenge() || user.TwoFactorCode != code || time.Now().UTC().After(user.TwoFactorExpiresAt) {
		return nil, ErrInvalidOrExpiredCode
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*LoginResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Handle, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user.Summarize()}, nil
}

// Register creates an active account with the given handle, email, and
// password. role defaults to the lowest-privilege role when empty.
func (s *AuthService) Register(ctx context.Context, handle, email, password string, role domain.Role) (*domain.Summary, error) {
	handle = strings.TrimSpace(handle)
	email = strings.TrimSpace(strings.ToLower(email))
	if handle == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !domain.ValidEmail(email) {
		return nil, ErrMissingFields
	}

	existing, err := s.users.FindByHandleOrEmail(ctx, handle, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.DefaultRole
	}
	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Handle:       handle,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration.
		if _, ok := repository.IsDuplicate(err); ok {
			return nil, ErrAccountExists
		}
		return nil, err
	}
	return user.Summarize(), nil
}

// SetTwoFactor toggles email 2FA on the caller's own account. Disabling
// clears any pending challenge.
func (s *AuthService) SetTwoFactor(ctx context.Context, userID string, enabled bool) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if err := s.users.SetTwoFactorEnabled(ctx, userID, enabled); err != nil {
		return err
	}
	s.log.Info("two-factor setting changed", "user_id", userID, "enabled", enabled)
	return nil
}
