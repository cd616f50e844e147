package service

import (
	"time"

	"salesdesk_backend/internal/buyout/domain"
	"salesdesk_backend/internal/buyout/transport"
	"salesdesk_backend/platform/money"

	"github.com/shopspring/decimal"
)

// Service adapts the buyout calculator to request/response DTOs.
type Service struct {
	calc      *domain.Calculator
	keypadMax decimal.Decimal
	now       func() time.Time
}

// New creates a buyout service. keypadMax caps entered monthly amounts; zero
// disables the cap.
func New(calc *domain.Calculator, keypadMax decimal.Decimal) *Service {
	return &Service{calc: calc, keypadMax: keypadMax, now: time.Now}
}

// WithClock replaces the clock used for contract-end month counting.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Calculator exposes the underlying calculator for other modules.
func (s *Service) Calculator() *domain.Calculator { return s.calc }

// ResolveMonths turns the request's month inputs into a month count.
func (s *Service) ResolveMonths(req transport.BreakdownRequest) int {
	switch {
	case req.ContractEnd != nil:
		return domain.MonthsUntil(*req.ContractEnd, s.now())
	case req.Preset != nil:
		return domain.PresetToMonths(*req.Preset)
	case req.MonthsRemaining > 0:
		return req.MonthsRemaining
	default:
		return 0
	}
}

// Breakdown computes the buyout for a request.
func (s *Service) Breakdown(req transport.BreakdownRequest) transport.BreakdownResponse {
	b := s.calc.Compute(domain.BillingInput{
		Provider:        req.Provider,
		MonthlyAmount:   money.Clamp(req.MonthlyAmount.Decimal, s.keypadMax),
		MonthsRemaining: s.ResolveMonths(req),
	})
	return toBreakdownResponse(b)
}

// Discounted computes the 80%-of-remaining-value buyout.
func (s *Service) Discounted(req transport.DiscountedRequest) transport.DiscountedResponse {
	months := req.MonthsLeft
	if req.ContractEnd != nil {
		months = domain.MonthsLeftInclusive(*req.ContractEnd, s.now())
	}
	r := domain.ComputeDiscounted(
		money.Clamp(req.MonthlyPrice.Decimal, s.keypadMax),
		months,
		s.calc.Options().ContributionCap,
	)
	return transport.DiscountedResponse{
		MonthlyPrice:         money.Float(r.MonthlyPrice),
		MonthsLeft:           r.MonthsLeft,
		DiscountedAmount:     money.Float(r.DiscountedAmount),
		ContributionCap:      money.Float(r.ContributionCap),
		CanFullyBuyout:       r.CanFullyBuyout,
		CustomerContribution: money.Float(r.CustomerContribution),
		MonthlyContribution:  money.Float(r.MonthlyContribution),
	}
}

// Providers lists the recognised providers and the calculator settings.
func (s *Service) Providers() transport.ProvidersResponse {
	opts := s.calc.Options()
	tariffs := opts.Tariffs.Tariffs()
	out := transport.ProvidersResponse{
		Providers:       make([]transport.ProviderResponse, 0, len(tariffs)),
		Presets:         append([]int(nil), domain.PresetMonths...),
		ContributionCap: money.Float(opts.ContributionCap),
		VATRate:         opts.VATRate.InexactFloat64(),
		KeypadMaxValue:  money.Float(s.keypadMax),
	}
	for _, t := range tariffs {
		out.Providers = append(out.Providers, transport.ProviderResponse{Key: t.Key, Name: t.Name, Aliases: t.Aliases})
	}
	return out
}

func toBreakdownResponse(b domain.Breakdown) transport.BreakdownResponse {
	resp := transport.BreakdownResponse{
		Provider:        b.Provider,
		TariffKey:       b.TariffKey,
		MonthlyAmount:   money.Float(b.MonthlyAmount),
		MonthsRemaining: b.MonthsRemaining,
		TotalCost:       money.Float(b.TotalCost),
		VATAmount:       money.Float(b.VATAmount),
		TotalExVAT:      money.Float(b.TotalExVAT),
		Contribution:    money.Float(b.Contribution),
		CustomerPayment: money.Float(b.CustomerPayment),
		FullBuyout:      b.FullBuyout,
	}
	resp.Formatted.TotalCost = money.Format(b.TotalCost)
	resp.Formatted.Contribution = money.Format(b.Contribution)
	resp.Formatted.CustomerPayment = money.Format(b.CustomerPayment)
	return resp
}
