package modkit

import (
	"net/http"
	"strings"
)

// Built is the resolved form of a module's options
type Built struct {
	Prefix string
	Mw     []func(http.Handler) http.Handler
}

// Build applies opts; the prefix gets a leading slash and loses any trailing one
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	prefix := strings.Trim(strings.TrimSpace(c.prefix), "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return Built{
		Prefix: prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
	}
}
