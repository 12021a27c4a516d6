package service

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/equiledger/backend/internal/config"
)

//go:generate mockery --name=Mailer

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail synchronously on the request path; there is
// no queue or retry.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.SMTP) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.Username,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("service.SMTPMailer, send mail error: %v", err)
	}
	return nil
}
