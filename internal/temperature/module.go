// Package temperature provides the sale temperature scoring module.
package temperature

import (
	catalog "salesdesk_backend/internal/catalog/domain"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/temperature/handler"
	"salesdesk_backend/internal/temperature/service"
	"salesdesk_backend/platform/validator"
)

// Module is the temperature module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the module over the given catalog.
func NewModule(c *catalog.Catalog, val *validator.Validator) *Module {
	svc := service.New(c)
	return &Module{handler: handler.New(svc, val), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "temperature"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the scoring route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/temperature", ctx.CalculatorLimiter.RateLimit(), m.handler.Calculate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
