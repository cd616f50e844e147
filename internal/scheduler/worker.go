package scheduler

import (
	"context"
	"fmt"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/events"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// AppointmentReader loads appointments for the reminder handler.
type AppointmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	reminders *ReminderHandler
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, repo AppointmentReader, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		Logger: newAsynqLogger(log),
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		reminders: NewReminderHandler(repo, bus, log),
		log:       log,
	}

	mux.HandleFunc(TaskAppointmentReminder, w.reminders.ProcessTask)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// ReminderHandler turns a due reminder task into an AppointmentReminderDue
// event.
type ReminderHandler struct {
	repo AppointmentReader
	bus  events.Bus
	log  *logger.Logger
}

func NewReminderHandler(repo AppointmentReader, bus events.Bus, log *logger.Logger) *ReminderHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &ReminderHandler{repo: repo, bus: bus, log: log}
}

// ProcessTask publishes the reminder when the appointment still exists and
// is scheduled. Malformed payloads and deleted appointments are dropped
// without retry.
func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAppointmentReminderPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	apptID, err := uuid.Parse(payload.AppointmentID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	appt, err := h.repo.GetByID(ctx, apptID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			h.log.Info("reminder for missing appointment dropped", "appointmentId", apptID)
			return nil
		}
		return err
	}

	if appt.Status != domain.StatusScheduled {
		return nil
	}

	if h.bus == nil {
		return nil
	}

	due := events.AppointmentReminderDue{
		BaseEvent:     events.NewBaseEvent(),
		AppointmentID: appt.ID,
		Type:          string(appt.Type),
		ScheduledFor:  appt.ScheduledFor,
		CustomerName:  appt.Customer.FullName(),
		ContactType:   string(appt.Customer.ContactType),
		ContactValue:  appt.Customer.ContactValue,
		Address:       appt.Customer.Address,
		Postcode:      appt.Customer.Postcode,
	}
	if appt.SelectedPackage != nil {
		due.PackageName = appt.SelectedPackage.Name
	}
	return h.bus.PublishSync(ctx, due)
}
