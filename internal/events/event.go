// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"salesdesk_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Appointment Domain Events
// =============================================================================

// AppointmentBooked is published when an intake session is submitted.
type AppointmentBooked struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	Type          string    `json:"type"`
	ScheduledFor  time.Time `json:"scheduledFor"`
	CustomerName  string    `json:"customerName"`
	ContactType   string    `json:"contactType"`
	ContactValue  string    `json:"contactValue"`
	Address       string    `json:"address"`
	Postcode      string    `json:"postcode"`
	PackageName   string    `json:"packageName,omitempty"`
	Temperature   string    `json:"temperature"`
}

func (e AppointmentBooked) EventName() string { return "appointments.booked" }

// AppointmentStatusChanged is published when an agent moves an appointment
// to another status.
type AppointmentStatusChanged struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	ChangedBy     uuid.UUID `json:"changedBy"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
}

func (e AppointmentStatusChanged) EventName() string { return "appointments.status_changed" }

// AppointmentReminderDue is published by the scheduler worker when a
// reminder task fires for an appointment that is still scheduled.
type AppointmentReminderDue struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	Type          string    `json:"type"`
	ScheduledFor  time.Time `json:"scheduledFor"`
	CustomerName  string    `json:"customerName"`
	ContactType   string    `json:"contactType"`
	ContactValue  string    `json:"contactValue"`
	Address       string    `json:"address"`
	Postcode      string    `json:"postcode"`
	PackageName   string    `json:"packageName,omitempty"`
}

func (e AppointmentReminderDue) EventName() string { return "appointments.reminder_due" }
