// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mail sends transactional email such as verification links.
//
// Delivery is best effort by default: a failed send is logged and the
// caller carries on. A strict [Dispatcher] reports the failure instead.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/models"
)

const VerificationSubject = "Verify your email address"

var ErrMailNotSent = errors.New("email was not sent")

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, email models.Email) error
}

// Dispatcher composes and sends application emails through a [Sender].
type Dispatcher struct {
	sender      Sender
	frontendURL string
	strict      bool
	templates   *templates
	logger      *logger.Logger
}

// NewDispatcher builds verification links under frontendURL. With strict
// set, SendEmail returns [ErrMailNotSent] when delivery fails.
func NewDispatcher(sender Sender, frontendURL string, strict bool, log *logger.Logger) (*Dispatcher, error) {
	tpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		strict:      strict,
		templates:   tpl,
		logger:      log,
	}, nil
}

// SendEmail sends email. Failures are logged; only a strict dispatcher
// returns them.
func (d *Dispatcher) SendEmail(ctx context.Context, email models.Email) error {
	log := logger.FromContext(ctx)

	if err := d.sender.Send(ctx, email); err != nil {
		log.Err(err).Str("func", "*Dispatcher.SendEmail").Str("to", email.To).Msg("error sending email")
		if d.strict {
			return fmt.Errorf("%w: %w", ErrMailNotSent, err)
		}
		return nil
	}

	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
	return nil
}

// VerificationLink returns the frontend page that confirms token.
func (d *Dispatcher) VerificationLink(token string) string {
	return d.frontendURL + "/auth/verify-email/" + url.PathEscape(token)
}

// GenerateToken returns a new random verification token.
func (d *Dispatcher) GenerateToken() string {
	return uuid.NewString()
}

// SendVerificationEmail mails the verification link for token to the
// given address.
func (d *Dispatcher) SendVerificationEmail(ctx context.Context, to, token string) error {
	link := d.VerificationLink(token)

	text, html, err := d.templates.render(verifyEmailTemplate, templateData{Link: link})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Dispatcher.SendVerificationEmail").Msg("failed to render email")
		return err
	}

	return d.SendEmail(ctx, models.Email{
		To:      to,
		Subject: VerificationSubject,
		Text:    text,
		HTML:    html,
	})
}
