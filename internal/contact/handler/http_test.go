package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakeSender struct {
	recipient, name, email, message string
	err                             error
	calls                           int
}

func (s *fakeSender) SendContactMessage(recipient, name, email, message string) error {
	s.calls++
	s.recipient, s.name, s.email, s.message = recipient, name, email, message
	return s.err
}

func newTestApp(sender *fakeSender) *fiber.App {
	app := fiber.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewContactHandler(sender, "owner@park.com", log).Register(app.Group("/api"))
	return app
}

func submit(t *testing.T, app *fiber.App, payload any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return resp, body
}

func TestContactSubmit(t *testing.T) {
	sender := &fakeSender{}
	app := newTestApp(sender)

	resp, body := submit(t, app, fiber.Map{
		"name":    "Juan",
		"email":   "juan@x.com",
		"message": "Hola",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["success"] != true {
		t.Errorf("body = %v", body)
	}
	if sender.recipient != "owner@park.com" || sender.name != "Juan" || sender.email != "juan@x.com" {
		t.Errorf("sender called with %+v", sender)
	}
}

func TestContactSubmit_MissingFields(t *testing.T) {
	sender := &fakeSender{}
	app := newTestApp(sender)

	for _, payload := range []fiber.Map{
		{"email": "juan@x.com", "message": "Hola"},
		{"name": "Juan", "message": "Hola"},
		{"name": "Juan", "email": "juan@x.com"},
	} {
		resp, body := submit(t, app, payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %v: status = %d, want 400", payload, resp.StatusCode)
		}
		if body["message"] != "Por favor, completa todos los campos." {
			t.Errorf("payload %v: message = %q", payload, body["message"])
		}
	}
	if sender.calls != 0 {
		t.Errorf("sender called %d times for invalid payloads", sender.calls)
	}
}

func TestContactSubmit_SendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	app := newTestApp(sender)

	resp, body := submit(t, app, fiber.Map{
		"name": "Juan", "email": "juan@x.com", "message": "Hola",
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body["success"] != false {
		t.Errorf("body = %v", body)
	}
}
