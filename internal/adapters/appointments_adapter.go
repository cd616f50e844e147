package adapters

import (
	"context"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/appointments/service"
	intake "salesdesk_backend/internal/intake/service"

	"github.com/google/uuid"
)

// AppointmentsAdapter books submitted intake sessions through the
// appointments service. It implements intake/service.Booker.
type AppointmentsAdapter struct {
	apptService *service.Service
}

// NewAppointmentsAdapter creates a new adapter that wraps the appointments service.
func NewAppointmentsAdapter(apptService *service.Service) *AppointmentsAdapter {
	return &AppointmentsAdapter{apptService: apptService}
}

// Book translates the intake booking into a NewAppointment, freezing the
// catalog entries as snapshots.
func (a *AppointmentsAdapter) Book(ctx context.Context, booking intake.Booking) (uuid.UUID, error) {
	in := domain.NewAppointment{
		Type:           booking.Type,
		ScheduledFor:   booking.ScheduledFor,
		Customer:       booking.Customer,
		Provider:       booking.Provider,
		SelectedAddons: make([]domain.AddonSnapshot, 0, len(booking.Addons)),
		PainPoints:     booking.PainPoints,
		Temperature:    string(booking.Result.Temperature),
		Score:          booking.Result.TotalScore,
		MaxScore:       booking.Result.MaxScore,
	}
	if p := booking.Package; p != nil {
		in.SelectedPackage = &domain.PackageSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			Speed:     p.Speed,
			Price:     p.Price,
			SalePrice: p.SalePrice,
		}
	}
	for _, addon := range booking.Addons {
		in.SelectedAddons = append(in.SelectedAddons, domain.AddonSnapshot{
			ID:    addon.ID,
			Name:  addon.Name,
			Price: addon.Price,
		})
	}

	appt, err := a.apptService.Create(ctx, in)
	if err != nil {
		return uuid.UUID{}, err
	}
	return appt.ID, nil
}

var _ intake.Booker = (*AppointmentsAdapter)(nil)
