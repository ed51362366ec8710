package store

import "chatter/internal/platform/config"

// Config aggregates backend settings
type Config struct {
	AppName string
	PG      PGConfig
	CH      CHConfig
}

// PGConfig configures the postgres pool and SQL tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures the clickhouse client
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string
}

// PGFromConfig reads SERVICE_PGSQL_DBURL, MAX_CONNS, SLOW_MS and LOG_SQL
func PGFromConfig(cfg config.Conf) PGConfig {
	pc := cfg.Prefix("SERVICE_PGSQL_")
	return PGConfig{
		Enabled:     true,
		URL:         pc.MustString("DBURL"),
		MaxConns:    int32(pc.MayInt("MAX_CONNS", 4)),
		SlowQueryMs: pc.MayInt("SLOW_MS", 500),
		LogSQL:      pc.MayBool("LOG_SQL", false),
	}
}

// CHFromConfig reads SERVICE_CLICKHOUSE_DBURL when enabled
func CHFromConfig(cfg config.Conf, enabled bool, role string) CHConfig {
	if !enabled {
		return CHConfig{}
	}
	return CHConfig{
		Enabled: true,
		URL:     cfg.Prefix("SERVICE_CLICKHOUSE_").MustString("DBURL"),
		Role:    role,
	}
}
