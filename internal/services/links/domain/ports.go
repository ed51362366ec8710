// Package domain defines canonicalizer ports and types
package domain

import (
	"context"

	"chatter/internal/adapters/resolver"
	edom "chatter/internal/services/enrich/domain"
)

// RawLink is one pending observed URL, grouped across the posts that shared it
type RawLink struct {
	ObservedID  string
	ObservedURL string
	Host        string
}

// Resolved is the identity update for every raw row with ObservedID
type Resolved struct {
	ObservedID   string
	CanonicalURL string
	CanonicalID  string
	Host         string
}

// Outcome is the terminal decision for one link in one cycle
type Outcome string

// Outcomes recorded per link
const (
	OutcomeResolved Outcome = "resolved"
	OutcomeNotFound Outcome = "not_found"
	OutcomeIgnored  Outcome = "ignored"
	OutcomeFallback Outcome = "fallback"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeDeferred Outcome = "deferred"
)

// CycleReport summarizes one poll cycle
type CycleReport struct {
	Fetched  int
	Outcomes map[Outcome]int
	Failed   int
}

// CanonicalizerPort is the public entrypoint exposed by the module
type CanonicalizerPort interface {
	// Cycle processes one page of pending links sequentially
	Cycle(ctx context.Context) (CycleReport, error)

	// Run polls until ctx is done
	Run(ctx context.Context) error
}

// Resolver follows redirects for a URL
type Resolver interface {
	Resolve(ctx context.Context, url string) (resolver.Result, error)
}

// Enricher is the subset of the enrich module the canonicalizer drives
type Enricher interface {
	Prepare(ctx context.Context, p edom.Page) edom.Enrichment
	Commit(ctx context.Context, es []edom.Enrichment) []string
}

// StorageRepo encapsulates the raw link store actions
type StorageRepo interface {
	// ListAllowedHosts returns the distinct hosts from the domain lists
	ListAllowedHosts(ctx context.Context) ([]string, error)

	// FetchPendingLinks returns up to limit observed URLs without a canonical identity
	FetchPendingLinks(ctx context.Context, limit int) ([]RawLink, error)

	// UpsertResolvedLink sets identity and host on every raw row for the observed id
	UpsertResolvedLink(ctx context.Context, r Resolved) error

	// DeleteLink removes every raw row for the observed id
	DeleteLink(ctx context.Context, observedID string) error
}
