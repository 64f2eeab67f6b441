package mailer

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingTransport struct {
	mu   sync.Mutex
	sent []Message
	done chan struct{}
	err  error
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{done: make(chan struct{}, 8)}
}

func (t *recordingTransport) Send(msg Message) error {
	t.mu.Lock()
	t.sent = append(t.sent, msg)
	t.mu.Unlock()
	t.done <- struct{}{}
	return t.err
}

func (t *recordingTransport) wait(tt *testing.T) Message {
	tt.Helper()
	select {
	case <-t.done:
	case <-time.After(2 * time.Second):
		tt.Fatal("no message was sent")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sent[len(t.sent)-1]
}

func newTestMailer(transport Transport) *Mailer {
	return New(transport, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSendTwoFactorCode(t *testing.T) {
	transport := newRecordingTransport()
	m := newTestMailer(transport)

	m.SendTwoFactorCode("ana@x.com", "ana", "123456", 5*time.Minute)
	msg := transport.wait(t)

	if msg.To != "ana@x.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.Subject != "Código de Verificación para Inicio de Sesión" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	for _, want := range []string{"ana", "123456", "5 minutos"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestSendContactMessage(t *testing.T) {
	transport := newRecordingTransport()
	m := newTestMailer(transport)

	err := m.SendContactMessage("owner@park.com", "Juan Pérez", "juan@x.com", "Quiero rentar una bodega")
	if err != nil {
		t.Fatalf("SendContactMessage: %v", err)
	}
	msg := transport.wait(t)

	if msg.To != "owner@park.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.ReplyTo != "juan@x.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}
	if msg.FromName != "Juan Pérez" {
		t.Errorf("FromName = %q", msg.FromName)
	}
	for _, want := range []string{"Juan Pérez", "juan@x.com", "Quiero rentar una bodega"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestSendContactMessage_EscapesHTML(t *testing.T) {
	transport := newRecordingTransport()
	m := newTestMailer(transport)

	if err := m.SendContactMessage("owner@park.com", "x", "x@x.com", "<script>alert(1)</script>"); err != nil {
		t.Fatalf("SendContactMessage: %v", err)
	}
	msg := transport.wait(t)
	if strings.Contains(msg.HTMLBody, "<script>") {
		t.Error("message body was not HTML-escaped")
	}
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("noreply@park.com", Message{
		To:       "dest@x.com",
		ReplyTo:  "visitor@x.com",
		FromName: "Visitante",
		Subject:  "Hola",
		HTMLBody: "<p>cuerpo</p>",
	}))

	for _, want := range []string{
		"From: Visitante <noreply@park.com>\r\n",
		"To: dest@x.com\r\n",
		"Reply-To: visitor@x.com\r\n",
		"Subject: Hola\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n",
		"\r\n<p>cuerpo</p>",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestBuildMessage_EncodesSubject(t *testing.T) {
	raw := string(buildMessage("noreply@park.com", Message{
		To:       "dest@x.com",
		Subject:  "Código de Verificación",
		HTMLBody: "x",
	}))
	if strings.Contains(raw, "Subject: Código") {
		t.Error("non-ASCII subject should be encoded")
	}
	if !strings.Contains(raw, "=?utf-8?") {
		t.Errorf("subject not MIME-encoded:\n%s", raw)
	}
}

func TestSMTPTransport_Defaults(t *testing.T) {
	tr := NewSMTPTransport("smtp.example.com", 0, "user", "pass", "noreply@park.com")
	if tr.Port != 587 {
		t.Errorf("Port = %d, want 587", tr.Port)
	}
	if tr.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", tr.Timeout, defaultTimeout)
	}
}

func TestSMTPTransport_MissingHost(t *testing.T) {
	tr := NewSMTPTransport("", 587, "", "", "noreply@park.com")
	if err := tr.Send(Message{To: "x@x.com", Subject: "x", HTMLBody: "x"}); err == nil {
		t.Fatal("expected error for missing host")
	}
}
