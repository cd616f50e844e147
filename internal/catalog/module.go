// Package catalog provides the product catalog and package recommender module.
package catalog

import (
	"salesdesk_backend/internal/catalog/domain"
	"salesdesk_backend/internal/catalog/handler"
	"salesdesk_backend/internal/catalog/service"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(catalog *domain.Catalog, val *validator.Validator) *Module {
	svc := service.New(catalog)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/catalog")
	g.GET("/packages", m.handler.ListPackages)
	g.GET("/addons", m.handler.ListAddons)
	g.GET("/tv-packages", m.handler.ListTVPackages)

	calc := g.Group("")
	calc.Use(ctx.CalculatorLimiter.RateLimit())
	calc.POST("/recommend", m.handler.Recommend)
	calc.POST("/compare", m.handler.Compare)
	calc.POST("/quote", m.handler.Quote)
	calc.POST("/speed-check", m.handler.SpeedCheck)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
