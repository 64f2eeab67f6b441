// Package mailer sends the application's outbound email: 2FA verification
// codes and contact-form submissions.
package mailer

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Message is one outbound email. ReplyTo and FromName are optional.
type Message struct {
	To       string
	ReplyTo  string
	FromName string
	Subject  string
	HTMLBody string
}

// Transport delivers a message to its recipient.
type Transport interface {
	Send(msg Message) error
}

// SMTPTransport delivers mail over SMTP with STARTTLS when the server offers
// it.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// NewSMTPTransport returns a transport for the given server. Port falls back
// to 587.
func NewSMTPTransport(host string, port int, username, password, from string) *SMTPTransport {
	if port == 0 {
		port = 587
	}
	return &SMTPTransport{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		Timeout:  defaultTimeout,
	}
}

// Send delivers the message. The whole exchange runs under the transport
// timeout.
func (t *SMTPTransport) Send(msg Message) error {
	if t.Host == "" {
		return fmt.Errorf("mailer: SMTP host not configured")
	}
	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)

	conn, err := net.DialTimeout("tcp", addr, t.Timeout)
	if err != nil {
		return fmt.Errorf("mailer: dial %s: %w", addr, err)
	}
	if err := conn.SetDeadline(time.Now().Add(t.Timeout)); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("mailer: handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: t.Host}); err != nil {
			return fmt.Errorf("mailer: starttls: %w", err)
		}
	}
	if t.Username != "" {
		auth := smtp.PlainAuth("", t.Username, t.Password, t.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mailer: auth: %w", err)
		}
	}

	if err := client.Mail(t.From); err != nil {
		return fmt.Errorf("mailer: mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("mailer: rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mailer: data: %w", err)
	}
	if _, err := w.Write(buildMessage(t.From, msg)); err != nil {
		w.Close()
		return fmt.Errorf("mailer: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailer: close body: %w", err)
	}
	return client.Quit()
}

// buildMessage renders the RFC 5322 bytes for the message with an HTML body.
func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	if msg.FromName != "" {
		fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", msg.FromName), from)
	} else {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
