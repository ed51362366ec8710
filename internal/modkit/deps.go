// Package modkit provides module wiring and core deps
package modkit

import (
	"chatter/internal/modkit/repokit"
	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/store"
)

// Deps holds core dependencies passed to modules.
// CH is nil unless the archive is enabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
