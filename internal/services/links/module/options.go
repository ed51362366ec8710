package module

import (
	"time"

	"chatter/internal/core/gatekeeper"
	"chatter/internal/platform/config"
)

// Options for the links module
type Options struct {
	PageSize    int
	LowWater    int
	IdleSleep   time.Duration
	RetryBudget int
	ShortURLLen int
	RetryCap    int
	RetryTTL    time.Duration
	IgnoreHosts []string
}

// FromConfig fills options from environment
// CORE_LINKS_PAGE_SIZE (default 100) is how many pending links one cycle fetches
// CORE_LINKS_LOW_WATER (default 50) is the page size under which the loop sleeps
// CORE_LINKS_IDLE_SLEEP (default 15s) is that sleep
// CORE_LINKS_RETRY_BUDGET (default 3) is the failures tolerated before keeping the observed url
// CORE_LINKS_SHORT_URL_LEN (default 30) is the length under which unknown hosts are still resolved
// CORE_LINKS_RETRY_CAP (default 10000) and CORE_LINKS_RETRY_TTL (default 24h) bound the retry book
// CORE_LINKS_IGNORE_HOSTS (csv) replaces the default ignore set
func FromConfig(cfg config.Conf) Options {
	l := cfg.Prefix("CORE_LINKS_")
	return Options{
		PageSize:    l.MayInt("PAGE_SIZE", 100),
		LowWater:    l.MayInt("LOW_WATER", 50),
		IdleSleep:   l.MayDuration("IDLE_SLEEP", 15*time.Second),
		RetryBudget: l.MayInt("RETRY_BUDGET", 3),
		ShortURLLen: l.MayInt("SHORT_URL_LEN", 30),
		RetryCap:    l.MayInt("RETRY_CAP", 10000),
		RetryTTL:    l.MayDuration("RETRY_TTL", 24*time.Hour),
		IgnoreHosts: l.MayCSV("IGNORE_HOSTS", gatekeeper.DefaultIgnore),
	}
}
