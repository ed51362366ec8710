// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "chatter/internal/platform/net/http"
)

// Module mirrors modkit.Module; it lives here so ports helpers avoid an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
