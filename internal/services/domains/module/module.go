// Package module wires allow-list maintenance as a modkit.Module
package module

import (
	"chatter/internal/modkit"
	"chatter/internal/modkit/httpkit"
	"chatter/internal/modkit/repokit"
	dom "chatter/internal/services/domains/domain"
	drepo "chatter/internal/services/domains/repo"
	dservice "chatter/internal/services/domains/service"
)

// Ports exported by the domains module
type Ports struct {
	Maintainer dom.MaintainerPort
}

// Module implements modkit.Module for domain maintenance
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New wires the maintenance service
func New(deps modkit.Deps) *Module {
	svc := dservice.New(repokit.TxRunner(deps.PG), drepo.NewPG())
	m := &Module{deps: deps}
	m.ports = Ports{Maintainer: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "domains" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: maintenance runs from the CLI
func (m *Module) MountRoutes(_ httpkit.Router) {}
