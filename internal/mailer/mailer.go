package mailer

import (
	"log/slog"
	"time"
)

// Mailer composes the application's emails and hands them to a Transport.
type Mailer struct {
	transport Transport
	log       *slog.Logger
}

func New(transport Transport, log *slog.Logger) *Mailer {
	if log == nil {
		log = slog.Default()
	}
	return &Mailer{transport: transport, log: log}
}

// SendTwoFactorCode dispatches the verification-code email in the background
// so login never blocks on the mail server. Failures are only logged; the
// caller already answered the client.
func (m *Mailer) SendTwoFactorCode(to, handle, code string, validFor time.Duration) {
	body, err := renderTwoFactorBody(handle, code, int(validFor.Minutes()))
	if err != nil {
		m.log.Error("render 2fa email", "error", err)
		return
	}
	go func() {
		err := m.transport.Send(Message{
			To:       to,
			Subject:  "Código de Verificación para Inicio de Sesión",
			HTMLBody: body,
		})
		if err != nil {
			m.log.Error("send 2fa email", "to", to, "error", err)
		}
	}()
}

// SendContactMessage forwards a contact-form submission to the site owner.
// Reply-To points at the submitter so replies reach them directly. Unlike the
// 2FA mail this is synchronous; the endpoint reports delivery failure.
func (m *Mailer) SendContactMessage(recipient, name, email, message string) error {
	body, err := renderContactBody(name, email, message)
	if err != nil {
		return err
	}
	return m.transport.Send(Message{
		To:       recipient,
		ReplyTo:  email,
		FromName: name,
		Subject:  "Nuevo mensaje de contacto de: " + name,
		HTMLBody: body,
	})
}
