package module

import (
	"chatter/internal/platform/config"
)

// Options for the hotlist module
type Options struct {
	DefaultAge       int
	MaxAge           int
	DefaultResults   int
	MaxResults       int
	Archive          bool
	ClusterDims      int
	ClusterThreshold float64
}

// FromConfig fills options from environment
// CORE_HOTLIST_DEFAULT_AGE (default 12) is the window in hours when none is given
// CORE_HOTLIST_MAX_AGE (default 24) is the endpoint ceiling for age
// CORE_HOTLIST_DEFAULT_RESULTS (default 50) and CORE_HOTLIST_MAX_RESULTS (default 100) bound max_results
// CORE_HOTLIST_ARCHIVE (default false) appends every list to clickhouse
// CORE_HOTLIST_CLUSTER_DIMS (default 50) is the latent space size
// CORE_HOTLIST_CLUSTER_THRESHOLD (default 0.8) is the cosine similarity a story must exceed to join a cluster
func FromConfig(cfg config.Conf) Options {
	h := cfg.Prefix("CORE_HOTLIST_")
	return Options{
		DefaultAge:       h.MayInt("DEFAULT_AGE", 12),
		MaxAge:           h.MayInt("MAX_AGE", 24),
		DefaultResults:   h.MayInt("DEFAULT_RESULTS", 50),
		MaxResults:       h.MayInt("MAX_RESULTS", 100),
		Archive:          h.MayBool("ARCHIVE", false),
		ClusterDims:      h.MayInt("CLUSTER_DIMS", 50),
		ClusterThreshold: h.MayFloat64("CLUSTER_THRESHOLD", 0.8),
	}
}
