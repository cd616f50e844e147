package service

import (
	"math"

	"salesdesk_backend/internal/catalog/domain"
	"salesdesk_backend/internal/catalog/transport"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/money"
)

// Service provides read access to the product catalog.
type Service struct {
	catalog *domain.Catalog
}

// New creates a new catalog service.
func New(catalog *domain.Catalog) *Service {
	if catalog == nil {
		catalog = domain.Default()
	}
	return &Service{catalog: catalog}
}

// Catalog returns the underlying catalog.
func (s *Service) Catalog() *domain.Catalog { return s.catalog }

// ListPackages returns packages cheapest first.
func (s *Service) ListPackages() transport.PackageListResponse {
	pkgs := s.catalog.Packages()
	items := make([]transport.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		items = append(items, ToPackageResponse(p))
	}
	return transport.PackageListResponse{Items: items}
}

// ListAddons returns every add-on, or only those compatible with speed when
// it is set.
func (s *Service) ListAddons(req transport.ListAddonsRequest) transport.AddonListResponse {
	addons := s.catalog.Addons()
	if req.Speed > 0 {
		addons = s.catalog.CompatibleAddons(req.Speed)
	}
	items := make([]transport.AddonResponse, 0, len(addons))
	for _, a := range addons {
		items = append(items, toAddonResponse(a))
	}
	return transport.AddonListResponse{Items: items}
}

// ListTVPackages returns TV bundles grouped by type in display order.
func (s *Service) ListTVPackages() transport.TVPackageListResponse {
	grouped := s.catalog.TVPackagesByType()
	out := transport.TVPackageListResponse{Groups: make([]transport.TVGroupResponse, 0, len(domain.TVTypes))}
	for _, t := range domain.TVTypes {
		items := grouped[t]
		if len(items) == 0 {
			continue
		}
		group := transport.TVGroupResponse{Type: string(t), Items: make([]transport.TVPackageResponse, 0, len(items))}
		for _, tv := range items {
			group.Items = append(group.Items, transport.TVPackageResponse{
				ID: tv.ID, Name: tv.Name, Type: string(tv.Type), Description: tv.Description,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}

// Recommend returns the package priced closest to the current bill.
func (s *Service) Recommend(req transport.PriceRequest) transport.RecommendResponse {
	p, ok := s.catalog.Recommend(money.FromFloat(req.CurrentPrice))
	if !ok {
		return transport.RecommendResponse{}
	}
	resp := ToPackageResponse(p)
	return transport.RecommendResponse{Found: true, Package: &resp}
}

// Compare annotates every package against the current bill.
func (s *Service) Compare(req transport.PriceRequest) transport.CompareResponse {
	current := money.FromFloat(req.CurrentPrice)
	rows := s.catalog.Compare(current)
	out := transport.CompareResponse{CurrentPrice: money.Float(current), Rows: make([]transport.ComparisonRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, transport.ComparisonRow{
			Package:           ToPackageResponse(r.Package),
			IsRecommended:     r.IsRecommended,
			IsCheaper:         r.IsCheaper,
			MonthlyDifference: money.Float(r.MonthlyDifference),
		})
	}
	return out
}

// Quote totals a package and its add-ons. Add-ons that do not fit the
// package speed are rejected.
func (s *Service) Quote(req transport.QuoteRequest) (transport.QuoteResponse, error) {
	pkg, ok := s.catalog.PackageByID(req.PackageID)
	if !ok {
		return transport.QuoteResponse{}, apperr.NotFound("package not found")
	}

	resp := transport.QuoteResponse{Package: ToPackageResponse(pkg), Addons: []transport.AddonResponse{}}
	seen := make(map[string]struct{}, len(req.AddonIDs))
	for _, id := range req.AddonIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		a, ok := s.catalog.AddonByID(id)
		if !ok {
			return transport.QuoteResponse{}, apperr.Validation("unknown add-on").WithDetails(id)
		}
		if !a.CompatibleWith(pkg.Speed) {
			return transport.QuoteResponse{}, apperr.Validation("add-on not available for this package").WithDetails(id)
		}
		resp.Addons = append(resp.Addons, toAddonResponse(a))
	}

	addonsTotal := s.catalog.AddonsTotal(req.AddonIDs)
	resp.AddonsTotal = money.Float(addonsTotal)
	resp.MonthlyTotal = money.Float(pkg.EffectivePrice().Add(addonsTotal))
	return resp, nil
}

// SpeedCheck flags a measured speed well below the estimate.
func (s *Service) SpeedCheck(req transport.SpeedCheckRequest) transport.SpeedCheckResponse {
	r := domain.VerifySpeed(req.EstimatedSpeed, req.ActualSpeed)
	return transport.SpeedCheckResponse{
		EstimatedSpeed: r.EstimatedSpeed,
		ActualSpeed:    r.ActualSpeed,
		DropPercent:    math.Round(r.DropPercent*10) / 10,
		Significant:    r.Significant,
	}
}

// ToPackageResponse maps a package to its wire form.
func ToPackageResponse(p domain.Package) transport.PackageResponse {
	resp := transport.PackageResponse{
		ID:             p.ID,
		Name:           p.Name,
		Speed:          p.Speed,
		Price:          money.Float(p.Price),
		EffectivePrice: money.Float(p.EffectivePrice()),
	}
	if p.SalePrice != nil {
		sp := money.Float(*p.SalePrice)
		resp.SalePrice = &sp
	}
	return resp
}

func toAddonResponse(a domain.Addon) transport.AddonResponse {
	return transport.AddonResponse{
		ID:               a.ID,
		Name:             a.Name,
		Price:            money.Float(a.Price),
		Description:      a.Description,
		CompatibleSpeeds: append([]int(nil), a.CompatibleSpeeds...),
	}
}
