package scheduler

import (
	"context"
	"time"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/platform/logger"
)

// DefaultReminderLeadTime is how long before a visit the reminder fires.
const DefaultReminderLeadTime = 24 * time.Hour

// ReminderEnqueuer schedules a reminder task for every booked appointment.
type ReminderEnqueuer struct {
	scheduler ReminderScheduler
	leadTime  time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func NewReminderEnqueuer(scheduler ReminderScheduler, leadTime time.Duration, log *logger.Logger) *ReminderEnqueuer {
	if leadTime <= 0 {
		leadTime = DefaultReminderLeadTime
	}
	if log == nil {
		log = logger.Discard()
	}
	return &ReminderEnqueuer{scheduler: scheduler, leadTime: leadTime, log: log, now: time.Now}
}

// WithClock overrides the time source.
func (e *ReminderEnqueuer) WithClock(now func() time.Time) *ReminderEnqueuer {
	e.now = now
	return e
}

// Subscribe registers the enqueuer on bus.
func (e *ReminderEnqueuer) Subscribe(bus events.Bus) {
	bus.Subscribe(events.AppointmentBooked{}.EventName(), e)
}

// Handle implements events.Handler. Reminders whose run time has already
// passed are skipped.
func (e *ReminderEnqueuer) Handle(ctx context.Context, event events.Event) error {
	booked, ok := event.(events.AppointmentBooked)
	if !ok || e.scheduler == nil {
		return nil
	}

	runAt := booked.ScheduledFor.Add(-e.leadTime)
	if !runAt.After(e.now()) {
		e.log.Debug("reminder skipped, run time already passed", "appointmentId", booked.AppointmentID, "runAt", runAt)
		return nil
	}

	return e.scheduler.ScheduleAppointmentReminder(ctx, AppointmentReminderPayload{
		AppointmentID: booked.AppointmentID.String(),
	}, runAt)
}

var _ events.Handler = (*ReminderEnqueuer)(nil)
