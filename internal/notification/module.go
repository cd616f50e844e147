// Package notification provides event handlers that email customers in
// response to appointment events. Domain modules only publish events and
// never talk to the mail provider directly.
package notification

import (
	"context"
	"strings"

	"salesdesk_backend/internal/email"
	"salesdesk_backend/internal/events"
	"salesdesk_backend/platform/logger"
)

// Module is the notification event handler.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// New creates the notification module. A nil sender drops every email.
func New(sender email.Sender, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.AppointmentBooked{}.EventName(), m)
	bus.Subscribe(events.AppointmentReminderDue{}.EventName(), m)
	bus.Subscribe(events.AppointmentStatusChanged{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.AppointmentBooked:
		return m.handleAppointmentBooked(ctx, e)
	case events.AppointmentReminderDue:
		return m.handleAppointmentReminderDue(ctx, e)
	case events.AppointmentStatusChanged:
		m.log.Info("appointment status changed",
			"appointmentId", e.AppointmentID,
			"changedBy", e.ChangedBy,
			"from", e.OldStatus,
			"to", e.NewStatus,
		)
		return nil
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleAppointmentBooked(ctx context.Context, e events.AppointmentBooked) error {
	to, ok := emailRecipient(e.ContactType, e.ContactValue)
	if !ok {
		return nil
	}

	visit := email.Visit{
		CustomerName: e.CustomerName,
		ScheduledFor: e.ScheduledFor,
		Address:      e.Address,
		Postcode:     e.Postcode,
		PackageName:  e.PackageName,
	}
	if err := m.sender.SendBookingConfirmation(ctx, to, visit); err != nil {
		m.log.Error("failed to send booking confirmation", "appointmentId", e.AppointmentID, "error", err)
		return err
	}
	m.log.Info("booking confirmation sent", "appointmentId", e.AppointmentID)
	return nil
}

func (m *Module) handleAppointmentReminderDue(ctx context.Context, e events.AppointmentReminderDue) error {
	to, ok := emailRecipient(e.ContactType, e.ContactValue)
	if !ok {
		return nil
	}

	visit := email.Visit{
		CustomerName: e.CustomerName,
		ScheduledFor: e.ScheduledFor,
		Address:      e.Address,
		Postcode:     e.Postcode,
		PackageName:  e.PackageName,
	}
	if err := m.sender.SendAppointmentReminder(ctx, to, visit); err != nil {
		m.log.Error("failed to send appointment reminder", "appointmentId", e.AppointmentID, "error", err)
		return err
	}
	m.log.Info("appointment reminder sent", "appointmentId", e.AppointmentID)
	return nil
}

// Only customers who gave an email address are contacted.
func emailRecipient(contactType, contactValue string) (string, bool) {
	value := strings.TrimSpace(contactValue)
	if contactType != "email" || value == "" {
		return "", false
	}
	return value, true
}

var _ events.Handler = (*Module)(nil)
