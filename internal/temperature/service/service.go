package service

import (
	catalog "salesdesk_backend/internal/catalog/domain"
	"salesdesk_backend/internal/shared/profile"
	"salesdesk_backend/internal/temperature/domain"
	"salesdesk_backend/internal/temperature/transport"
)

// Service scores visits for the HTTP layer and for other modules.
type Service struct {
	scorer  *domain.Scorer
	catalog *catalog.Catalog
}

// New creates a temperature service over the given catalog.
func New(c *catalog.Catalog) *Service {
	if c == nil {
		c = catalog.Default()
	}
	return &Service{scorer: domain.NewScorer(c), catalog: c}
}

// Scorer exposes the underlying scorer.
func (s *Service) Scorer() *domain.Scorer { return s.scorer }

// Score computes the temperature for domain values. An unknown package id
// is ignored.
func (s *Service) Score(customer profile.Customer, provider profile.Provider, painPoints []string, typ profile.AppointmentType, packageID string) domain.Result {
	in := domain.Input{
		Customer:   customer,
		Provider:   provider,
		PainPoints: painPoints,
		Type:       typ,
	}
	if packageID != "" {
		if p, ok := s.catalog.PackageByID(packageID); ok {
			in.SelectedPackage = &p
		}
	}
	return s.scorer.Calculate(in)
}

// Calculate scores a request.
func (s *Service) Calculate(req transport.CalculateRequest) transport.TemperatureResponse {
	res := s.Score(req.Customer, req.Provider.ToProvider(), req.PainPoints, profile.AppointmentType(req.AppointmentType), req.SelectedPackageID)
	return ToResponse(res)
}

// ToResponse maps a result to its wire form.
func ToResponse(res domain.Result) transport.TemperatureResponse {
	out := transport.TemperatureResponse{
		TotalScore:  res.TotalScore,
		MaxScore:    res.MaxScore,
		Temperature: string(res.Temperature),
		Breakdown:   make([]transport.CategoryResponse, 0, len(res.Breakdown)),
	}
	if res.MaxScore > 0 {
		out.Percentage = res.TotalScore * 100 / res.MaxScore
	}
	for _, c := range res.Breakdown {
		out.Breakdown = append(out.Breakdown, transport.CategoryResponse{
			Category: c.Category,
			Score:    c.Score,
			MaxScore: c.MaxScore,
			Details:  c.Details,
		})
	}
	return out
}
