// Package appointments provides the appointments domain module.
package appointments

import (
	"salesdesk_backend/internal/appointments/handler"
	"salesdesk_backend/internal/appointments/repository"
	"salesdesk_backend/internal/appointments/service"
	"salesdesk_backend/internal/events"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/platform/validator"
)

// Module represents the appointments domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
	Repo    repository.Repository
}

// NewModule creates a new appointments module over the given repository.
func NewModule(repo repository.Repository, val *validator.Validator, eventBus events.Bus) *Module {
	svc := service.New(repo, eventBus)
	return &Module{
		handler: handler.New(svc, val),
		Service: svc,
		Repo:    repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "appointments"
}

// RegisterRoutes registers the module's routes under /api/v1/appointments.
// They are agent-only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	appointments := ctx.Protected.Group("/appointments")
	m.handler.RegisterRoutes(appointments)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
