package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/platform/apperr"

	"github.com/google/uuid"
)

// MemoryRepository keeps appointments in process memory. It backs the API
// when no database is configured and is used in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Appointment
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]domain.Appointment)}
}

func (r *MemoryRepository) Create(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[appt.ID]; exists {
		return apperr.Conflict("appointment already exists")
	}
	r.items[appt.ID] = *appt
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appt, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound(appointmentNotFoundMsg)
	}
	return &appt, nil
}

func (r *MemoryRepository) List(_ context.Context, params ListParams) (*ListResult, error) {
	r.mu.RLock()
	matched := make([]domain.Appointment, 0, len(r.items))
	for _, appt := range r.items {
		if params.Type != nil && string(appt.Type) != *params.Type {
			continue
		}
		if params.Status != nil && string(appt.Status) != *params.Status {
			continue
		}
		if params.From != nil && appt.ScheduledFor.Before(*params.From) {
			continue
		}
		if params.To != nil && appt.ScheduledFor.After(*params.To) {
			continue
		}
		matched = append(matched, appt)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].ScheduledFor.Equal(matched[j].ScheduledFor) {
			return matched[i].ScheduledFor.After(matched[j].ScheduledFor)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (params.Page - 1) * params.PageSize
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if params.PageSize <= 0 || end > total {
		end = total
	}

	return &ListResult{
		Items:      matched[start:end],
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	}, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.items[id]
	if !ok {
		return apperr.NotFound(appointmentNotFoundMsg)
	}
	appt.Status = status
	appt.UpdatedAt = updatedAt
	r.items[id] = appt
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
