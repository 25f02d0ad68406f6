package notify

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(config utils.EmailConfig) Mailer {
	var auth smtp.Auth
	if config.User != "" {
		auth = smtp.PlainAuth("", config.User, config.Password, config.Host)
	}
	return &smtpMailer{
		addr: net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		auth: auth,
		from: config.From,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, to, []byte(msg.String()))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %d recipients: %w", len(to), err)
		}
		return nil
	}
}

type logMailer struct {
	log *zap.Logger
}

// NewLogMailer only logs outgoing mail. Used when no SMTP host is set.
func NewLogMailer(log *zap.Logger) Mailer {
	return &logMailer{log: log.With(zap.String("component", "mailer"))}
}

func (m *logMailer) Send(_ context.Context, to []string, subject, _ string) error {
	m.log.Info("Mail not sent, SMTP is not configured",
		zap.Strings("to", to),
		zap.String("subject", subject),
	)
	return nil
}
