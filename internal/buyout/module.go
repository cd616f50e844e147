// Package buyout provides the contract buyout calculator module.
package buyout

import (
	"salesdesk_backend/internal/buyout/domain"
	"salesdesk_backend/internal/buyout/handler"
	"salesdesk_backend/internal/buyout/service"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/validator"

	"github.com/shopspring/decimal"
)

// Module is the buyout module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule builds the calculator from the pricing config and tariff table.
func NewModule(cfg config.PricingConfig, tariffs *domain.Table, val *validator.Validator) *Module {
	calc := domain.NewCalculator(domain.Options{
		ContributionCap: decimal.NewFromFloat(cfg.GetContributionCap()),
		VATRate:         decimal.NewFromFloat(cfg.GetVATRate()),
		Tariffs:         tariffs,
	})
	svc := service.New(calc, decimal.NewFromFloat(cfg.GetKeypadMaxValue()))
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "buyout"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts buyout routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/buyout")
	g.Use(ctx.CalculatorLimiter.RateLimit())
	g.GET("/providers", m.handler.Providers)
	g.POST("/breakdown", m.handler.Breakdown)
	g.POST("/discounted", m.handler.Discounted)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
