package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error { return p.err }

func probe(t *testing.T, db Pinger) int {
	t.Helper()
	app := fiber.New()
	NewHealthHandler(db).Register(app.Group("/api"))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestPing(t *testing.T) {
	if code := probe(t, &fakePinger{}); code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}

func TestPing_DatabaseDown(t *testing.T) {
	if code := probe(t, &fakePinger{err: errors.New("down")}); code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", code)
	}
}

func TestPing_NilStore(t *testing.T) {
	if code := probe(t, nil); code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}
