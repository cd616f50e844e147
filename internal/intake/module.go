// Package intake provides the doorstep intake wizard module.
package intake

import (
	catalog "salesdesk_backend/internal/catalog/domain"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/intake/handler"
	"salesdesk_backend/internal/intake/repository"
	"salesdesk_backend/internal/intake/service"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/money"
	"salesdesk_backend/platform/validator"
)

// Config is the subset of settings the intake module reads.
type Config interface {
	GetPhoneRegion() string
	GetKeypadMaxValue() float64
}

// Module is the intake module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the intake module. Submitted sessions are handed to booker.
func NewModule(store repository.Store, c *catalog.Catalog, booker service.Booker, val *validator.Validator, cfg Config, log *logger.Logger) *Module {
	svc := service.New(store, c, booker, val, service.Options{
		PhoneRegion:    cfg.GetPhoneRegion(),
		KeypadMaxValue: money.FromFloat(cfg.GetKeypadMaxValue()),
	}, log)
	return &Module{handler: handler.New(svc, val), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the agent-only session routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/intake/sessions"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
