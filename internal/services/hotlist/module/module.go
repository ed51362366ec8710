// Package module wires the hot list generator and its endpoints
package module

import (
	"context"
	"net/http"
	"time"

	"chatter/internal/core/cluster"
	"chatter/internal/modkit"
	"chatter/internal/modkit/httpkit"
	"chatter/internal/modkit/repokit"
	"chatter/internal/platform/logger"
	dom "chatter/internal/services/hotlist/domain"
	hhttp "chatter/internal/services/hotlist/http"
	hrepo "chatter/internal/services/hotlist/repo"
	hservice "chatter/internal/services/hotlist/service"
)

// Ports exported by the hotlist module
type Ports struct {
	Generator dom.GeneratorPort
}

// Module implements modkit.Module for the hot list
type Module struct {
	deps   modkit.Deps
	opts   Options
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports
}

// New wires the generator; the clickhouse archive is used when enabled and deps.CH is set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	b := modkit.Build(opts...)

	var archive dom.Archive
	if o.Archive && deps.CH != nil {
		a := hrepo.NewCHArchive(deps.CH)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.EnsureSchema(ctx); err != nil {
			logger.Named("hotlist").Warn().Err(err).Msg("archive disabled: schema setup failed")
		} else {
			archive = a
		}
	}

	svc := hservice.New(
		repokit.TxRunner(deps.PG),
		hrepo.NewPG(),
		cluster.New(cluster.NewTokenizer(nil), o.ClusterDims, o.ClusterThreshold),
		archive,
	)
	return &Module{
		deps:   deps,
		opts:   o,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Generator: svc},
	}
}

// Name returns the module name
func (m *Module) Name() string { return "hotlist" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// ServiceLimits are the endpoint defaults and ceilings
func (m *Module) ServiceLimits() dom.Limits {
	return dom.Limits{
		DefaultAge:     m.opts.DefaultAge,
		MaxAge:         m.opts.MaxAge,
		DefaultResults: m.opts.DefaultResults,
		MaxResults:     m.opts.MaxResults,
	}
}

// CLILimits keep the defaults without ceilings
func (m *Module) CLILimits() dom.Limits {
	return dom.CLILimits(m.opts.DefaultAge, m.opts.DefaultResults)
}

// MountRoutes mounts GET {prefix}/hotlist behind the module middlewares
func (m *Module) MountRoutes(r httpkit.Router) {
	m.scoped(r, func(rr httpkit.Router) {
		hhttp.Register(rr, m.ports.Generator, m.ServiceLimits())
	})
}

// MountPage mounts the rendered page at path behind the module middlewares
func (m *Module) MountPage(r httpkit.Router, path string) {
	m.scoped(r, func(rr httpkit.Router) {
		hhttp.RegisterPage(rr, path, m.ports.Generator, m.ServiceLimits())
	})
}

func (m *Module) scoped(r httpkit.Router, fn func(httpkit.Router)) {
	mount := func(rr httpkit.Router) {
		rr.Group(func(g httpkit.Router) {
			if len(m.mws) > 0 {
				g.Use(m.mws...)
			}
			fn(g)
		})
	}
	if m.prefix == "" {
		mount(r)
		return
	}
	r.Route(m.prefix, mount)
}
