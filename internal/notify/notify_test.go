package notify

import (
	"context"
	"errors"
	"geg-automation/internal/components/telemetry"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testFailure() Failure {
	return Failure{
		RunID:     "5f0c0f4e-0000-4000-8000-000000000001",
		Email:     "operador@example.com",
		StartedAt: time.Date(2025, 7, 3, 16, 20, 0, 0, time.UTC),
		Err:       errors.New("login rejected"),
	}
}

func TestMessage(t *testing.T) {
	mailer := NewMailer(SmtpConfig{
		Addr: "smtp.example.com:587",
		From: "robo@example.com",
		To:   []string{"ops@example.com"},
	}, telemetry.SlogAPI{})

	mail := mailer.message(testFailure())
	require.Equal(t, "Automação GEG <robo@example.com>", mail.From)
	require.Equal(t, []string{"ops@example.com"}, mail.To)
	require.Contains(t, mail.Subject, "operador@example.com")
	require.Contains(t, string(mail.Text), "login rejected")
	require.Contains(t, string(mail.Text), "03/07/2025 16:20:00")
}

func TestNotifyWithoutRecipients(t *testing.T) {
	mailer := NewMailer(SmtpConfig{Addr: "127.0.0.1:1"}, telemetry.SlogAPI{})
	require.NoError(t, mailer.NotifyFailure(context.Background(), testFailure()))
}

func TestNotifyUnreachableServer(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	tel := &telemetry.Recorder{}
	mailer := NewMailer(SmtpConfig{
		Addr: addr,
		From: "robo@example.com",
		To:   []string{"ops@example.com"},
	}, tel)

	err = mailer.NotifyFailure(context.Background(), testFailure())
	require.Error(t, err)
	require.Len(t, tel.Find("broken"), 1)
}

func TestNop(t *testing.T) {
	var notifier Notifier = Nop{}
	require.NoError(t, notifier.NotifyFailure(context.Background(), testFailure()))
}
