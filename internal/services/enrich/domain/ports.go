// Package domain defines enrichment ports and types
package domain

import (
	"context"
	"time"
)

// NoneLabel marks a canonical link as classified with nothing found
const NoneLabel = "none"

// Page is a fetched live page awaiting enrichment
type Page struct {
	CanonicalID string
	URL         string
	Host        string
	ContentType string
	Body        []byte
}

// Metadata is the canonical_links row written for a page
type Metadata struct {
	CanonicalID string
	URL         string
	Host        string
	Title       string
	Description string
}

// Topic is one classifier label for a canonical link
type Topic struct {
	Label string
	Score float64
}

// Enrichment is computed before any store write and emitted by Commit.
// Claimed means a classify claim is held and must be released after topics land
type Enrichment struct {
	Meta    Metadata
	Topics  []Topic
	Claimed bool
}

// Unclassified is a canonical link with no topic rows and no live claim
type Unclassified struct {
	CanonicalID string
	Title       string
	Description string
}

// Classifier is the topic collaborator.
// A nil error with an empty slice means the service found nothing
type Classifier interface {
	Enabled() bool
	Classify(ctx context.Context, title, content string) ([]Topic, error)
}

// EnricherPort is what the canonicalizer and workers call
type EnricherPort interface {
	// Prepare extracts metadata and classifies without writing metadata or topics
	Prepare(ctx context.Context, p Page) Enrichment

	// Commit writes metadata first, then topics, then releases claims; failures are per record.
	// The returned ids have no metadata row and must not be referenced yet
	Commit(ctx context.Context, es []Enrichment) []string

	// SweepOnce classifies one batch of the backlog and returns how many were handled
	SweepOnce(ctx context.Context) (int, error)

	// Sweep runs SweepOnce until ctx is done
	Sweep(ctx context.Context) error
}

// StorageRepo is every store action enrichment performs
type StorageRepo interface {
	// InsertCanonicalMetadata is idempotent by canonical id and never overwrites
	InsertCanonicalMetadata(ctx context.Context, m Metadata) error

	// InsertTopics is idempotent by (canonical id, label)
	InsertTopics(ctx context.Context, canonicalID string, ts []Topic) error

	// FetchUnclassified lists links with zero topics and no unexpired claim
	FetchUnclassified(ctx context.Context, limit int) ([]Unclassified, error)

	// Claim compare-and-sets the classify marker; false when topics exist or another owner holds it
	Claim(ctx context.Context, canonicalID, owner string, ttl time.Duration) (bool, error)

	// Release drops the marker when owner still holds it
	Release(ctx context.Context, canonicalID, owner string) error
}
