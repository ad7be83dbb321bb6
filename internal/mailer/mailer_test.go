package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage(
		"noreply@eleganza.local", "admin@example.com", "Welcome", "Hello, admin!"))

	lines := strings.Split(msg, "\r\n")
	require.Contains(t, lines, "From: noreply@eleganza.local")
	require.Contains(t, lines, "To: admin@example.com")
	require.Contains(t, lines, "Subject: Welcome")
	require.Contains(t, lines, `Content-Type: text/plain; charset="UTF-8"`)

	// headers and body are separated by a blank line
	require.True(t, strings.HasSuffix(msg, "\r\n\r\nHello, admin!"))
}

func TestAuth(t *testing.T) {
	t.Run("NoCredentials", func(t *testing.T) {
		m := New(Options{Host: "localhost", Port: 1025})
		require.Nil(t, m.auth())
	})

	t.Run("WithCredentials", func(t *testing.T) {
		m := New(Options{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"})
		require.NotNil(t, m.auth())
	})
}

func TestAddr(t *testing.T) {
	m := New(Options{Host: "localhost", Port: 1025})
	require.Equal(t, "localhost:1025", m.addr())
}
