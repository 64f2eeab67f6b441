package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"sanjose-park/backend/internal/auth/service"
	"sanjose-park/backend/internal/security"
	"sanjose-park/backend/internal/server/middleware"
	"sanjose-park/backend/internal/user/domain"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Handle == handle {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Handle == handle || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetChallenge(ctx context.Context, id, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.TwoFactorCode = code
		u.TwoFactorExpiresAt = expiresAt
	}
	return nil
}

func (r *fakeUserRepo) ClearChallenge(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.TwoFactorCode = ""
		u.TwoFactorExpiresAt = time.Time{}
	}
	return nil
}

func (r *fakeUserRepo) SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.TwoFactorEnabled = enabled
		if !enabled {
			u.TwoFactorCode = ""
			u.TwoFactorExpiresAt = time.Time{}
		}
	}
	return nil
}

type noopMailer struct{}

func (noopMailer) SendTwoFactorCode(to, handle, code string, validFor time.Duration) {}

func newTestApp(t *testing.T) (*fiber.App, *fakeUserRepo, *security.TokenProvider) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := security.NewTokenProvider([]byte("test-secret"), "test", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewAuthService(repo, security.NewHasher(4), tokens, noopMailer{}, log)

	app := fiber.New()
	api := app.Group("/api")
	NewAuthHandler(svc, log).Register(api, middleware.RequireAuth(tokens))
	return app, repo, tokens
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			t.Fatalf("decode body %q: %v", data, err)
		}
	}
	return resp, body
}

func registerAccount(t *testing.T, app *fiber.App, handle, email, password string) map[string]any {
	t.Helper()
	resp, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"nombre_usuario": handle,
		"email":          email,
		"contrasena":     password,
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body = %v", resp.StatusCode, body)
	}
	return body
}

func TestLoginEndpoint_Success(t *testing.T) {
	app, _, tokens := newTestApp(t)
	registerAccount(t, app, "ana", "ana@x.com", "secret123")

	resp, body := postJSON(t, app, "/api/auth/login", fiber.Map{
		"nombre_usuario": "ana",
		"contrasena":     "secret123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["twoFactorRequired"] != false {
		t.Error("twoFactorRequired should be false")
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Handle != "ana" || claims.Role != "visualizador" {
		t.Errorf("claims = {handle:%s rol:%s}", claims.Handle, claims.Role)
	}
	user, _ := body["user"].(map[string]any)
	if user["nombre_usuario"] != "ana" || user["email"] != "ana@x.com" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["contrasena"]; leaked {
		t.Error("password hash leaked in response")
	}
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerAccount(t, app, "ana", "ana@x.com", "secret123")

	for _, payload := range []fiber.Map{
		{"nombre_usuario": "ana", "contrasena": "secret124"},
		{"nombre_usuario": "nadie", "contrasena": "secret123"},
	} {
		resp, body := postJSON(t, app, "/api/auth/login", payload, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("payload %v: status = %d, want 401", payload, resp.StatusCode)
		}
		if body["message"] != "Credenciales inválidas." {
			t.Errorf("payload %v: message = %q", payload, body["message"])
		}
	}
}

func TestLoginEndpoint_InactiveAccount(t *testing.T) {
	app, repo, _ := newTestApp(t)
	created := registerAccount(t, app, "ana", "ana@x.com", "secret123")
	id := created["user"].(map[string]any)["id"].(string)
	repo.mu.Lock()
	repo.byID[id].Active = false
	repo.mu.Unlock()

	resp, body := postJSON(t, app, "/api/auth/login", fiber.Map{
		"nombre_usuario": "ana",
		"contrasena":     "secret123",
	}, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if body["message"] != "Tu cuenta está inactiva. Contacta al administrador." {
		t.Errorf("message = %q", body["message"])
	}
}

func TestLoginEndpoint_TwoFactorFlow(t *testing.T) {
	app, repo, _ := newTestApp(t)
	created := registerAccount(t, app, "ana", "ana@x.com", "secret123")
	id := created["user"].(map[string]any)["id"].(string)
	repo.mu.Lock()
	repo.byID[id].TwoFactorEnabled = true
	repo.mu.Unlock()

	resp, body := postJSON(t, app, "/api/auth/login", fiber.Map{
		"nombre_usuario": "ana",
		"contrasena":     "secret123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("challenge leg: status = %d, body = %v", resp.StatusCode, body)
	}
	if body["twoFactorRequired"] != true {
		t.Fatal("twoFactorRequired should be true")
	}
	if _, hasToken := body["token"]; hasToken {
		t.Error("no token should be returned on the challenge leg")
	}

	repo.mu.Lock()
	code := repo.byID[id].TwoFactorCode
	repo.mu.Unlock()

	resp, body = postJSON(t, app, "/api/auth/login", fiber.Map{
		"nombre_usuario": "ana",
		"contrasena":     "secret123",
		"codigo":         code,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify leg: status = %d, body = %v", resp.StatusCode, body)
	}
	if body["token"] == "" || body["twoFactorRequired"] != false {
		t.Errorf("verify leg body = %v", body)
	}

	resp, body = postJSON(t, app, "/api/auth/login", fiber.Map{
		"nombre_usuario": "ana",
		"contrasena":     "secret123",
		"codigo":         code,
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("reused code: status = %d, want 401", resp.StatusCode)
	}
	if body["message"] != "Código inválido o expirado." {
		t.Errorf("reused code: message = %q", body["message"])
	}
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"nombre_usuario": "ana",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["message"] != "Todos los campos son obligatorios." {
		t.Errorf("message = %q", body["message"])
	}
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerAccount(t, app, "ana", "ana@x.com", "secret123")

	resp, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"nombre_usuario": "ana",
		"email":          "otra@x.com",
		"contrasena":     "pw",
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	if body["message"] != "El nombre de usuario o el email ya están registrados." {
		t.Errorf("message = %q", body["message"])
	}
}

func TestTwoFactorToggleEndpoint(t *testing.T) {
	app, repo, tokens := newTestApp(t)
	created := registerAccount(t, app, "ana", "ana@x.com", "secret123")
	id := created["user"].(map[string]any)["id"].(string)

	token, _, err := tokens.Issue(id, "ana", "visualizador")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/auth/2fa", bytes.NewReader([]byte(`{"enable":true}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	repo.mu.Lock()
	enabled := repo.byID[id].TwoFactorEnabled
	repo.mu.Unlock()
	if !enabled {
		t.Error("2FA should be enabled on the account")
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/auth/2fa", bytes.NewReader([]byte(`{"enable":true}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated toggle: status = %d, want 403", resp.StatusCode)
	}
}
