// Package http provides the hot list endpoints
package http

import (
	"bytes"
	"embed"
	"html/template"
	stdhttp "net/http"

	"chatter/internal/modkit/httpkit"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/net/http/bind"
	dom "chatter/internal/services/hotlist/domain"
)

//go:embed templates/hotlist.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/hotlist.html"))

// Register mounts the enveloped JSON endpoint
func Register(r httpkit.Router, g dom.GeneratorPort, lim dom.Limits) {
	h := &handlers{gen: g, lim: lim}

	// hot list as the data of a standard envelope
	httpkit.Get(r, "/hotlist", h.hotlist)
}

// RegisterPage mounts the rendered page at path; json=1 returns the bare list instead
func RegisterPage(r httpkit.Router, path string, g dom.GeneratorPort, lim dom.Limits) {
	h := &handlers{gen: g, lim: lim}
	r.Get(path, h.page)
}

type handlers struct {
	gen dom.GeneratorPort
	lim dom.Limits
}

// request binds and clamps; malformed values never reject the request
func (h *handlers) request(r *stdhttp.Request) dom.HotListRequest {
	req := h.lim.Defaults()
	bind.Query(r, &req)
	return req.Clamp(h.lim)
}

// @Summary Hot list
// @Tags Hotlist
// @Produce json
// @Param age query int false "window hours"
// @Param days_ago query int false "shift window end by days"
// @Param hours_ago query int false "shift window end by hours"
// @Param max_results query int false "result count"
// @Param cluster query bool false "group near-duplicate stories"
// @Success 200 {object} hotlist.HotList "ok"
// @Router /hotlist [get]
func (h *handlers) hotlist(r *stdhttp.Request) (any, error) {
	return h.gen.Generate(r.Context(), h.request(r))
}

func (h *handlers) page(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	req := h.request(r)
	hl, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
		return
	}
	if bind.Truthy(r.URL.Query().Get("json")) || req.Format == dom.FormatJSON {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Bare(hl) })(w, r)
		return
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, hl); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("hotlist page render failed")
		stdhttp.Error(w, "render failed", stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
