// Package email delivers customer emails for booked appointments.
package email

import (
	"context"
	"time"

	"salesdesk_backend/platform/config"
)

// Visit describes the appointment an email is about.
type Visit struct {
	CustomerName string
	ScheduledFor time.Time
	Address      string
	Postcode     string
	PackageName  string
}

type Sender interface {
	SendBookingConfirmation(ctx context.Context, toEmail string, visit Visit) error
	SendAppointmentReminder(ctx context.Context, toEmail string, visit Visit) error
}

type NoopSender struct{}

func (NoopSender) SendBookingConfirmation(ctx context.Context, toEmail string, visit Visit) error {
	return nil
}

func (NoopSender) SendAppointmentReminder(ctx context.Context, toEmail string, visit Visit) error {
	return nil
}

// NewSender returns an SMTP sender when SMTP is configured, otherwise a
// sender that drops everything.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.IsEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
