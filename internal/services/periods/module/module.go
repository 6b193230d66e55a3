// Package module implements the periods module
package module

import (
	"net/http"

	"wearlog/internal/modkit"
	"wearlog/internal/modkit/httpkit"
	"wearlog/internal/services/periods/domain"
	periodshttp "wearlog/internal/services/periods/http"
	"wearlog/internal/services/periods/repo"
	"wearlog/internal/services/periods/service"
)

// Ports exposed by the periods module
type Ports struct {
	Editor   domain.EditorPort
	Replacer domain.ReplacerPort
}

// Module implements modkit.Module
type Module struct {
	deps   modkit.Deps
	ports  Ports
	prefix string
	mws    []func(http.Handler) http.Handler
}

// New constructs a new periods module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("periods"),
		modkit.WithPrefix("/periods"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("periods module: expected WithPorts(periods/domain.Ports)")
	}
	if ports.Epochs == nil {
		panic("periods module: Ports missing Epochs reader")
	}

	cfg := FromConfig(deps.Cfg)
	svc := service.New(deps.PG, repo.NewPG(), ports.Epochs, service.Config{
		SleepCapacity:   cfg.SleepCapacity,
		NonwearCapacity: cfg.NonwearCapacity,
	})

	m := &Module{deps: deps, prefix: b.Prefix, mws: b.Mw}
	m.ports = Ports{Editor: svc, Replacer: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "periods" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return m.prefix }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		periodshttp.Register(rr, m.ports.Editor)
	})
}
