package chatbot

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRespond_EmptyReturnsMainMenu(t *testing.T) {
	for _, selected := range []string{"", "main_menu"} {
		reply := Respond(selected)
		if !strings.Contains(reply.Message, "asistente virtual") {
			t.Errorf("Respond(%q) message = %q", selected, reply.Message)
		}
		if len(reply.Options) != 6 {
			t.Errorf("Respond(%q) options = %d, want 6", selected, len(reply.Options))
		}
	}
}

func TestRespond_Menu(t *testing.T) {
	reply := Respond("historia")
	if !strings.Contains(reply.Message, "Historia y Visión") {
		t.Errorf("message = %q", reply.Message)
	}
	var values []string
	for _, opt := range reply.Options {
		values = append(values, opt.Value)
	}
	want := []string{"historia_fundacion", "historia_vision", "main_menu"}
	if len(values) != len(want) {
		t.Fatalf("options = %v", values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestRespond_LeafAnswer(t *testing.T) {
	reply := Respond("ubicacion_direccion")
	if !strings.Contains(reply.Message, "Funza") {
		t.Errorf("message = %q", reply.Message)
	}
	if len(reply.Options) != 1 || reply.Options[0].Value != "main_menu" {
		t.Errorf("options = %v, want only back-to-main", reply.Options)
	}
}

func TestRespond_UnknownOption(t *testing.T) {
	reply := Respond("inexistente")
	if !strings.Contains(reply.Message, "no es válida") {
		t.Errorf("message = %q", reply.Message)
	}
	if len(reply.Options) != 6 {
		t.Errorf("options = %d, want main menu options", len(reply.Options))
	}
}

func TestRespond_ExitHasNoOptions(t *testing.T) {
	reply := Respond("exit")
	if !strings.Contains(reply.Message, "Hasta pronto") {
		t.Errorf("message = %q", reply.Message)
	}
	if reply.Options == nil || len(reply.Options) != 0 {
		t.Errorf("options = %v, want empty non-nil slice", reply.Options)
	}
}

func TestRespond_EveryMenuOptionResolves(t *testing.T) {
	for key, node := range tree {
		for _, opt := range node.Options {
			reply := Respond(opt.Value)
			if strings.Contains(reply.Message, "no es válida") {
				t.Errorf("menu %q offers %q, which does not resolve", key, opt.Value)
			}
		}
	}
}

func TestChatbotEndpoint(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/api"))

	body := bytes.NewReader([]byte(`{"option":"faq_requisitos"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(reply.Message, "requisitos") {
		t.Errorf("message = %q", reply.Message)
	}
}
