// Package module provides the epochs module
package module

import (
	"net/http"

	"wearlog/internal/modkit"
	"wearlog/internal/modkit/httpkit"
	"wearlog/internal/services/epochs/domain"
	"wearlog/internal/services/epochs/repo"
	"wearlog/internal/services/epochs/service"
)

// Ports exposed by the epochs module
type Ports struct {
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new epochs module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(deps.PG, binder, service.Config{
		MaxRows: opts.MaxRows,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "epochs" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
