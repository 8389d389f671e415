package notify

import (
	"context"
	"fmt"
	"geg-automation/internal/components/telemetry"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

const report_notify_send = "notify.send"

var tracer = telemetry.Tracer("geg-automation/internal/notify")

// Failure describes one automation run that did not finish.
type Failure struct {
	RunID     string
	Email     string
	StartedAt time.Time
	Err       error
}

// Notifier tells operators about failed runs.
type Notifier interface {
	NotifyFailure(ctx context.Context, failure Failure) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) NotifyFailure(ctx context.Context, failure Failure) error {
	return nil
}

type SmtpConfig struct {
	// Addr is host:port of the SMTP server.
	Addr     string
	Username string
	Password string
	From     string
	To       []string
}

type Mailer struct {
	config SmtpConfig
	tel    telemetry.API
}

func NewMailer(config SmtpConfig, tel telemetry.API) Mailer {
	return Mailer{
		config: config,
		tel:    telemetry.NewScopedAPI("notify", tel),
	}
}

func (m Mailer) message(failure Failure) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Automação GEG <%s>", m.config.From)
	mail.To = m.config.To
	mail.Subject = fmt.Sprintf("[GEG] execução falhou para %s", failure.Email)

	body := fmt.Sprintf(`A coleta de prontuários do Gente e Gestão falhou.

Execução: %s
Usuário: %s
Início: %s

Erro:
%v`,
		failure.RunID,
		failure.Email,
		failure.StartedAt.Format("02/01/2006 15:04:05"),
		failure.Err,
	)
	mail.Text = []byte(body)
	return mail
}

func (m Mailer) NotifyFailure(ctx context.Context, failure Failure) error {
	_, span := tracer.Start(ctx, "NotifyFailure")
	defer span.End()

	if len(m.config.To) == 0 {
		return nil
	}

	var auth smtp.Auth
	if m.config.Username != "" {
		host, _, err := net.SplitHostPort(m.config.Addr)
		if err != nil {
			return err
		}
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, host)
	}

	mail := m.message(failure)
	err := mail.Send(m.config.Addr, auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(m.config.Addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		m.tel.ReportBroken(report_notify_send, err, "run_id", failure.RunID)
		return err
	}
	return nil
}
