package repository

import (
	"context"
	"testing"
	"time"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/shared/profile"
	"salesdesk_backend/platform/apperr"

	"github.com/google/uuid"
)

func seed(t *testing.T, repo *MemoryRepository, typ profile.AppointmentType, at time.Time) *domain.Appointment {
	t.Helper()
	appt := domain.New(domain.NewAppointment{Type: typ, ScheduledFor: at}, at.Add(-48*time.Hour))
	if err := repo.Create(context.Background(), appt); err != nil {
		t.Fatalf("create: %v", err)
	}
	return appt
}

func TestMemoryListOrdersLatestFirst(t *testing.T) {
	repo := NewMemory()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first := seed(t, repo, profile.AppointmentLead, base)
	third := seed(t, repo, profile.AppointmentRevisit, base.Add(48*time.Hour))
	second := seed(t, repo, profile.AppointmentLead, base.Add(24*time.Hour))

	res, err := repo.List(context.Background(), ListParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 3 || res.TotalPages != 1 {
		t.Fatalf("unexpected totals %+v", res)
	}
	want := []uuid.UUID{third.ID, second.ID, first.ID}
	for i, id := range want {
		if res.Items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, res.Items[i].ID)
		}
	}
}

func TestMemoryListFiltersAndPages(t *testing.T) {
	repo := NewMemory()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seed(t, repo, profile.AppointmentLead, base.Add(time.Duration(i)*time.Hour))
	}
	seed(t, repo, profile.AppointmentRevisit, base)

	lead := string(profile.AppointmentLead)
	res, err := repo.List(context.Background(), ListParams{Type: &lead, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 5 || res.TotalPages != 3 || len(res.Items) != 2 {
		t.Fatalf("unexpected page %+v", res)
	}

	from := base.Add(3 * time.Hour)
	res, _ = repo.List(context.Background(), ListParams{From: &from, Page: 1, PageSize: 10})
	if res.Total != 2 {
		t.Fatalf("expected 2 from %s, got %d", from, res.Total)
	}

	res, _ = repo.List(context.Background(), ListParams{Page: 9, PageSize: 10})
	if len(res.Items) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(res.Items))
	}
}

func TestMemoryUpdateStatus(t *testing.T) {
	repo := NewMemory()
	appt := seed(t, repo, profile.AppointmentLead, time.Now())
	at := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.UpdateStatus(context.Background(), appt.ID, domain.StatusCompleted, at); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusCompleted || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected appointment %+v", got)
	}

	err = repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusCompleted, at)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryCreateRejectsDuplicate(t *testing.T) {
	repo := NewMemory()
	appt := seed(t, repo, profile.AppointmentLead, time.Now())
	if err := repo.Create(context.Background(), appt); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
