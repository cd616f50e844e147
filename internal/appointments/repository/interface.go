package repository

import (
	"context"
	"time"

	"salesdesk_backend/internal/appointments/domain"

	"github.com/google/uuid"
)

const appointmentNotFoundMsg = "appointment not found"

// ListParams contains parameters for listing appointments.
type ListParams struct {
	Type     *string
	Status   *string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// ListResult contains the result of listing appointments.
type ListResult struct {
	Items      []domain.Appointment
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Repository persists appointments. List orders by scheduled time, latest
// first.
type Repository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, updatedAt time.Time) error
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
