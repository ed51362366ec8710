// Package api composes the ranking service HTTP surface
package api

import (
	"context"
	"net/http"
	"time"

	"chatter/internal/core/version"
	"chatter/internal/modkit"
	"chatter/internal/modkit/httpkit"
	"chatter/internal/modkit/module"
	"chatter/internal/modkit/swaggerkit"
	"chatter/internal/platform/config"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/metrics"
	phttp "chatter/internal/platform/net/http"
	"chatter/internal/platform/net/middleware"
	"chatter/internal/platform/store"

	hotmod "chatter/internal/services/hotlist/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool
	CORS           middleware.CORSOptions
	// Rate is a ulule formatted limit such as "120-M"; empty disables limiting
	Rate string
}

// Mount mounts the ranking page at /, the JSON API under /api/v1 and the
// operational endpoints on the root router
func Mount(r phttp.Router, opt Options) {
	r.Use(middleware.Heartbeat("/health"))

	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	stack := httpkit.Limited(opt.CORS, opt.Rate)
	hot := hotmod.New(deps)
	mods := []module.Module{hot}

	// the rendered list lives at the root
	r.Group(func(g phttp.Router) {
		g.Use(stack...)
		hot.MountPage(g, "/")
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	r.Handle("/metrics", metrics.Handler())
	r.Get("/readyz", readyz(opt.Store))
	phttp.GetJSON(r, "/version", func(*http.Request) (any, error) {
		return version.Info("chatter-api"), nil
	})
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}

func readyz(st *store.Store) phttp.Handler {
	return httpkit.Call(func(r *http.Request) (any, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.Guard(ctx); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "store not ready")
		}
		return map[string]string{"status": "ready"}, nil
	})
}
