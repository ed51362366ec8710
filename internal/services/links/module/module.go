// Package module wires the canonicalizer as a modkit.Module
package module

import (
	"chatter/internal/adapters/resolver"
	"chatter/internal/core/canon"
	"chatter/internal/core/gatekeeper"
	"chatter/internal/modkit"
	"chatter/internal/modkit/httpkit"
	"chatter/internal/modkit/repokit"
	dom "chatter/internal/services/links/domain"
	lrepo "chatter/internal/services/links/repo"
	lservice "chatter/internal/services/links/service"
)

// Ports exported by the links module
type Ports struct {
	Canonicalizer dom.CanonicalizerPort
}

// Module implements modkit.Module for the canonicalizer
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New wires the canonicalizer; enr is usually the enrich module's Enricher port
func New(deps modkit.Deps, enr dom.Enricher) *Module {
	opts := FromConfig(deps.Cfg)
	svc := lservice.New(
		repokit.TxRunner(deps.PG),
		lrepo.NewPG(),
		resolver.New(resolver.FromConfig(deps.Cfg)),
		enr,
		gatekeeper.New(opts.IgnoreHosts),
		canon.NewRetryBook(opts.RetryCap, opts.RetryTTL),
		lservice.Config{
			PageSize:    opts.PageSize,
			LowWater:    opts.LowWater,
			IdleSleep:   opts.IdleSleep,
			RetryBudget: opts.RetryBudget,
			ShortURLLen: opts.ShortURLLen,
		},
	)
	m := &Module{deps: deps}
	m.ports = Ports{Canonicalizer: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "links" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: the canonicalizer has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
