// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mail

import (
	"context"
	"crypto/tls"

	"gopkg.in/gomail.v2"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/models"
)

// dialer is implemented by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	dialer dialer
	from   string
}

func NewSMTPSender(cfg config.Mail) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	if d.SSL {
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPSender{dialer: d, from: from}
}

func (s *SMTPSender) Send(ctx context.Context, email models.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.dialer.DialAndSend(newMessage(s.from, email))
}

func newMessage(from string, email models.Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	case email.HTML != "":
		m.SetBody("text/html", email.HTML)
	default:
		m.SetBody("text/plain", email.Text)
	}

	return m
}

// LogSender only logs messages. It stands in for a relay when none is
// configured.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(_ context.Context, email models.Email) error {
	s.logger.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Str("text", email.Text).
		Msg("mail relay is not configured, email not delivered")
	return nil
}
