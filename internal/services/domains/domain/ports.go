// Package domain defines allow-list maintenance ports and types
package domain

import (
	"context"
	"io"
)

// Record is one allow-list row
type Record struct {
	Set    string
	Domain string
	Subset string
}

// ImportReport counts what an import did
type ImportReport struct {
	Added   int
	Skipped int
}

// MaintainerPort is used by the domains CLI
type MaintainerPort interface {
	// Import reads set,domain[,subset] rows; reset truncates first, in the same transaction
	Import(ctx context.Context, r io.Reader, reset bool) (ImportReport, error)

	// List returns the distinct allowed domains
	List(ctx context.Context) ([]string, error)
}

// StorageRepo is the domains table
type StorageRepo interface {
	AddDomains(ctx context.Context, recs []Record) (int, error)
	RemoveAll(ctx context.Context) error
	ListDomains(ctx context.Context) ([]string, error)
}
