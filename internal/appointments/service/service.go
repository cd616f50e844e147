package service

import (
	"context"
	"fmt"
	"time"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/appointments/repository"
	"salesdesk_backend/internal/events"
	"salesdesk_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for appointments.
type Service struct {
	repo     repository.Repository
	eventBus events.Bus
	now      func() time.Time
}

// New creates a new appointments service. A nil bus disables event
// publishing.
func New(repo repository.Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create books a new appointment and announces it.
func (s *Service) Create(ctx context.Context, in domain.NewAppointment) (*domain.Appointment, error) {
	if in.ScheduledFor.IsZero() {
		return nil, apperr.Validation("scheduledFor is required")
	}
	if in.Type != "" && !in.Type.Valid() {
		return nil, apperr.Validation("invalid appointment type")
	}

	appt := domain.New(in, s.now())
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		evt := events.AppointmentBooked{
			BaseEvent:     events.NewBaseEvent(),
			AppointmentID: appt.ID,
			Type:          string(appt.Type),
			ScheduledFor:  appt.ScheduledFor,
			CustomerName:  appt.Customer.FullName(),
			ContactType:   string(appt.Customer.ContactType),
			ContactValue:  appt.Customer.ContactValue,
			Address:       appt.Customer.Address,
			Postcode:      appt.Customer.Postcode,
			Temperature:   appt.Temperature,
		}
		if appt.SelectedPackage != nil {
			evt.PackageName = appt.SelectedPackage.Name
		}
		s.eventBus.Publish(ctx, evt)
	}
	return appt, nil
}

// Get returns a single appointment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListFilter narrows a listing.
type ListFilter struct {
	Type     string
	Status   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// List returns a page of appointments, latest scheduled first.
func (s *Service) List(ctx context.Context, f ListFilter) (*repository.ListResult, error) {
	params := repository.ListParams{
		From:     f.From,
		To:       f.To,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}
	if f.Type != "" {
		typ := f.Type
		params.Type = &typ
	}
	if f.Status != "" {
		if !domain.Status(f.Status).Valid() {
			return nil, apperr.Validation("invalid status filter")
		}
		status := f.Status
		params.Status = &status
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, apperr.Validation("to must not be before from")
	}
	return s.repo.List(ctx, params)
}

// UpdateStatus moves an appointment to next. Setting the current status again
// is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.Status, changedBy uuid.UUID) (*domain.Appointment, error) {
	if !next.Valid() {
		return nil, apperr.Validation("invalid status")
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == next {
		return appt, nil
	}
	if !appt.Status.CanTransition(next) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot change status from %s to %s", appt.Status, next))
	}

	updatedAt := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, next, updatedAt); err != nil {
		return nil, err
	}

	old := appt.Status
	appt.Status = next
	appt.UpdatedAt = updatedAt

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.AppointmentStatusChanged{
			BaseEvent:     events.NewBaseEvent(),
			AppointmentID: id,
			ChangedBy:     changedBy,
			OldStatus:     string(old),
			NewStatus:     string(next),
		})
	}
	return appt, nil
}
