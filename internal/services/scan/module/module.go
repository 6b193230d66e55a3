// Package module implements the scan module
package module

import (
	"net/http"

	"wearlog/internal/modkit"
	"wearlog/internal/modkit/httpkit"
	"wearlog/internal/services/scan/domain"
	"wearlog/internal/services/scan/service"
)

// Ports exposed by the scan module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new scan module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("scan"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("scan module: expected WithPorts(scan/domain.Ports)")
	}
	if ports.Epochs == nil || ports.Periods == nil {
		panic("scan module: Ports missing Epochs or Periods")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.MinPeriodLen != 0 {
		cfg.MinPeriodLen = overrides.MinPeriodLen
	}
	if overrides.SpikeTolerance != 0 {
		cfg.SpikeTolerance = overrides.SpikeTolerance
	}
	if overrides.WindowSize != 0 {
		cfg.WindowSize = overrides.WindowSize
	}
	// bool override wins (defaults false if caller didn't set)
	cfg.MirrorMask = cfg.MirrorMask || overrides.MirrorMask

	params := cfg.Params()
	runner := service.New(ports.Epochs, ports.Periods, deps.CH, service.Config{
		Params:     params,
		MirrorMask: cfg.MirrorMask,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "scan" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
