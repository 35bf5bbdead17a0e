package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
)

var (
	ErrNotConfigured = errors.New("SMTP credentials not configured")
	ErrInvalid       = errors.New("invalid contact message")
)

// Config is where contact messages are delivered.
type Config struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Message is one contact form submission.
type Message struct {
	Name    string
	Email   string
	Message string
}

// Validate checks the form fields the visitor filled in.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: email address is not valid", ErrInvalid)
	}
	if strings.TrimSpace(m.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalid)
	}
	if strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return fmt.Errorf("%w: header injection", ErrInvalid)
	}
	return nil
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg  Config
	send SendFunc
}

// NewMailer returns a mailer that delivers through smtp.SendMail when send
// is nil.
func NewMailer(cfg Config, send SendFunc) *Mailer {
	if send == nil {
		send = smtp.SendMail
	}
	return &Mailer{cfg: cfg, send: send}
}

func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Pass != ""
}

// Send validates msg and mails it to the site owner with the visitor as
// Reply-To.
func (m *Mailer) Send(msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if !m.Configured() {
		return ErrNotConfigured
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	raw := []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, raw); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}
