package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/appointments/repository"
	"salesdesk_backend/internal/events"
	"salesdesk_backend/internal/shared/profile"
	"salesdesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeScheduler struct {
	payloads []AppointmentReminderPayload
	runAts   []time.Time
}

func (f *fakeScheduler) ScheduleAppointmentReminder(_ context.Context, payload AppointmentReminderPayload, runAt time.Time) error {
	f.payloads = append(f.payloads, payload)
	f.runAts = append(f.runAts, runAt)
	return nil
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestReminderEnqueuerSchedulesAheadOfVisit(t *testing.T) {
	fake := &fakeScheduler{}
	enq := NewReminderEnqueuer(fake, 24*time.Hour, nil).WithClock(func() time.Time { return now })
	id := uuid.New()

	err := enq.Handle(context.Background(), events.AppointmentBooked{AppointmentID: id, ScheduledFor: now.Add(72 * time.Hour)})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(fake.payloads) != 1 || fake.payloads[0].AppointmentID != id.String() {
		t.Fatalf("unexpected payloads %+v", fake.payloads)
	}
	if want := now.Add(48 * time.Hour); !fake.runAts[0].Equal(want) {
		t.Fatalf("expected run at %s, got %s", want, fake.runAts[0])
	}
}

func TestReminderEnqueuerSkipsPastRunTime(t *testing.T) {
	fake := &fakeScheduler{}
	enq := NewReminderEnqueuer(fake, 24*time.Hour, nil).WithClock(func() time.Time { return now })

	_ = enq.Handle(context.Background(), events.AppointmentBooked{AppointmentID: uuid.New(), ScheduledFor: now.Add(3 * time.Hour)})
	_ = enq.Handle(context.Background(), events.AppointmentBooked{AppointmentID: uuid.New(), ScheduledFor: now.Add(-time.Hour)})
	if len(fake.payloads) != 0 {
		t.Fatalf("expected nothing scheduled, got %+v", fake.payloads)
	}
}

type captureBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *captureBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *captureBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func reminderTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	task, err := NewAppointmentReminderTask(AppointmentReminderPayload{AppointmentID: id})
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	return task
}

func TestReminderHandlerPublishesForScheduled(t *testing.T) {
	repo := repository.NewMemory()
	appt := domain.New(domain.NewAppointment{
		Type:         profile.AppointmentLead,
		ScheduledFor: now.Add(24 * time.Hour),
		Customer: profile.Customer{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			ContactType:  profile.ContactEmail,
			ContactValue: "ada@example.com",
			Postcode:     "SW1A 1AA",
		},
	}, now)
	_ = repo.Create(context.Background(), appt)

	bus := &captureBus{}
	h := NewReminderHandler(repo, bus, logger.Discard())
	if err := h.ProcessTask(context.Background(), reminderTask(t, appt.ID.String())); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.events))
	}
	due := bus.events[0].(events.AppointmentReminderDue)
	if due.AppointmentID != appt.ID || due.ContactValue != "ada@example.com" || due.CustomerName != "Ada Lovelace" || due.Postcode != "SW1A 1AA" {
		t.Fatalf("unexpected event %+v", due)
	}

	_ = repo.UpdateStatus(context.Background(), appt.ID, domain.StatusCancelled, now)
	if err := h.ProcessTask(context.Background(), reminderTask(t, appt.ID.String())); err != nil {
		t.Fatalf("process cancelled: %v", err)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected no reminder for cancelled appointment")
	}
}

func TestReminderHandlerDropsBadTasks(t *testing.T) {
	h := NewReminderHandler(repository.NewMemory(), &captureBus{}, nil)

	err := h.ProcessTask(context.Background(), reminderTask(t, "not-a-uuid"))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if err := h.ProcessTask(context.Background(), reminderTask(t, uuid.NewString())); err != nil {
		t.Fatalf("expected missing appointment to be dropped, got %v", err)
	}
}

func TestReminderTaskID(t *testing.T) {
	if got := reminderTaskID("abc"); got != "appointments.reminder:abc" {
		t.Fatalf("unexpected task id %q", got)
	}
}
