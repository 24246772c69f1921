// Package mailer delivers one-time sign-in codes over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// SMTPMailer sends OTP mails through a plain-auth SMTP relay. When no host
// is configured the mailer runs in development mode: the code is logged
// instead of sent so sign-in stays usable without mail credentials.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	log  *zap.Logger
}

func New(host, port, user, pass string, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, log: log}
}

// SendOTP emails the code to the given address. The message mirrors what
// customers have always received: subject, one line, one hour validity.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	if m.host == "" {
		m.log.Info("smtp not configured, logging otp instead", zap.String("to", to), zap.String("otp", code))
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your OTP for Sign-In\r\n\r\nYour OTP is %s. It is valid for 1 hour.\r\n",
		m.user, to, code))

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	// smtp.SendMail has no context plumbing; respect an already-cancelled
	// request before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, msg); err != nil {
		m.log.Error("otp mail delivery failed", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}
