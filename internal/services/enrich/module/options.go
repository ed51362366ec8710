package module

import (
	"time"

	"chatter/internal/platform/config"
)

// Options for the enrich module
type Options struct {
	SweepBatch int
	SweepPause time.Duration
	SweepIdle  time.Duration
	ClaimTTL   time.Duration
}

// FromConfig fills options from environment
// CORE_ENRICH_SWEEP_BATCH (default 5) is how many backlog links one sweep pass classifies
// CORE_ENRICH_SWEEP_PAUSE (default 750ms) is the pause between sweep passes
// CORE_ENRICH_SWEEP_IDLE (default 30s) is the pause after an empty pass
// CORE_ENRICH_CLAIM_TTL (default 2m) bounds how long a classify claim survives a crashed owner
func FromConfig(cfg config.Conf) Options {
	e := cfg.Prefix("CORE_ENRICH_")
	return Options{
		SweepBatch: e.MayInt("SWEEP_BATCH", 5),
		SweepPause: e.MayDuration("SWEEP_PAUSE", 750*time.Millisecond),
		SweepIdle:  e.MayDuration("SWEEP_IDLE", 30*time.Second),
		ClaimTTL:   e.MayDuration("CLAIM_TTL", 2*time.Minute),
	}
}
