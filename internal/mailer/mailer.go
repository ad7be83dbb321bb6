// Package mailer delivers transactional email over SMTP. The default
// deployment points it at a local mail catcher, so auth is optional.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"go.uber.org/zap"
)

// Options configures the SMTP connection.
type Options struct {
	Host string
	Port int
	From string

	// Username and Password enable PLAIN auth when both are set.
	Username string
	Password string
}

// Mailer sends plain-text email.
type Mailer struct {
	options Options
}

// New returns a Mailer for the given SMTP server.
func New(options Options) *Mailer {
	return &Mailer{options: options}
}

func (m *Mailer) addr() string {
	return net.JoinHostPort(m.options.Host, strconv.Itoa(m.options.Port))
}

func (m *Mailer) auth() smtp.Auth {
	if m.options.Username == "" || m.options.Password == "" {
		return nil
	}

	return smtp.PlainAuth("", m.options.Username, m.options.Password, m.options.Host)
}

// buildMessage assembles the RFC 5322 payload.
func buildMessage(from, to, subject, body string) []byte {
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	return []byte(msg)
}

// Send delivers a single plain-text message to one recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	err := smtp.SendMail(m.addr(), m.auth(), m.options.From, []string{to},
		buildMessage(m.options.From, to, subject, body))
	if err != nil {
		return fmt.Errorf("could not send email to %q: %w", to, err)
	}

	logger.Info(ctx, "email sent",
		zap.String("to", to), zap.String("subject", subject))

	return nil
}
