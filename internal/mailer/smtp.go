package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"placementdesk/pkg/types"
)

type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
}

func NewSMTPMailer(config *types.Config) *SMTPMailer {
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", config.SMTPHost, config.SMTPPort),
		host:     config.SMTPHost,
		username: config.SMTPUsername,
		password: config.SMTPPassword,
		from:     config.MailFrom,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, recipients []string, subject, body string) error {

	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	err := smtp.SendMail(m.addr, auth, m.from, recipients, []byte(msg.String()))
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
