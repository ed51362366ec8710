package domain

import (
	"context"

	"chatter/internal/core/hotlist"
)

// Window selects links first posted within MaxAge hours before the window end,
// which sits DaysAgo days and HoursAgo hours before now
type Window struct {
	MaxAge   int
	DaysAgo  int
	HoursAgo int
}

// GeneratorPort builds a hot list from the current store contents
type GeneratorPort interface {
	Generate(ctx context.Context, req HotListRequest) (hotlist.HotList, error)
}

// StorageRepo is the aggregation read
type StorageRepo interface {
	// FetchAggregatedWindow returns one row per canonical link with distinct
	// poster count, first post time, age at the window end and topics by score desc
	FetchAggregatedWindow(ctx context.Context, w Window) ([]hotlist.Article, error)
}

// Archive stores generated lists for later analysis
type Archive interface {
	Write(ctx context.Context, runID string, hl hotlist.HotList) error
}
