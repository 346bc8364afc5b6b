// Package mail provides the MailSender implementation backed by SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// smtpSender delivers mail through a plain SMTP relay.
type smtpSender struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger *slog.Logger
}

// noopSender is used when mail is not configured; every send is logged and dropped.
type noopSender struct {
	logger *slog.Logger
}

func (s *noopSender) Send(_ context.Context, mail service.Mail) error {
	s.logger.Debug("[NoopMail] Mail delivery disabled, skipping",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
	)

	return nil
}

// SenderParams holds dependencies for the mail sender, injected by Fx.
type SenderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSMTPSender creates the mail sender from configuration. Without a mail
// section a no-op sender is returned, so local setups run without a relay.
func NewSMTPSender(params SenderParams) (service.MailSender, error) {
	cfg := params.Config.Mail
	if cfg == nil || cfg.Host == "" {
		params.Logger.Info("Mail not configured, using no-op sender")

		return &noopSender{logger: params.Logger}, nil
	}
	if cfg.From == "" {
		return nil, errors.New("mail sender address must be configured")
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &smtpSender{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from:   cfg.From,
		auth:   auth,
		logger: params.Logger,
	}, nil
}

// Send delivers one mail message.
func (s *smtpSender) Send(ctx context.Context, mail service.Mail) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if mail.To == "" {
		return errors.New("mail recipient must not be empty")
	}

	msg := buildMessage(s.from, mail)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{mail.To}, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	s.logger.Info("[Mail] Message delivered",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
	)

	return nil
}

// buildMessage assembles an RFC 5322 message with UTF-8 headers.
func buildMessage(from string, mail service.Mail) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + mail.To + "\r\n")
	b.WriteString("Subject: " + mail.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(mail.Body)

	return []byte(b.String())
}
