package repo

import (
	"context"
	"time"

	"chatter/internal/core/hotlist"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/store"
)

// ArchiveTable is the clickhouse table hot lists are appended to
const ArchiveTable = "hotlist_archive"

const archiveDDL = `
	CREATE TABLE IF NOT EXISTS hotlist_archive (
	    run_id       String,
	    generated_at DateTime64(6, 'UTC'),
	    mode         LowCardinality(String),
	    rank         UInt32,
	    cluster      UInt32,
	    canonical_id String,
	    url          String,
	    hotness      Float64,
	    post_count   UInt32,
	    age          Float64
	) ENGINE = MergeTree
	ORDER BY (generated_at, run_id, rank)`

// CHArchive appends generated lists to clickhouse
type CHArchive struct {
	ch  store.Clickhouse
	now func() time.Time
}

// NewCHArchive wraps ch; EnsureSchema should run once before Write
func NewCHArchive(ch store.Clickhouse) *CHArchive {
	return &CHArchive{ch: ch, now: time.Now}
}

// EnsureSchema creates the archive table if needed
func (a *CHArchive) EnsureSchema(ctx context.Context) error {
	return perr.WrapIf(a.ch.Exec(ctx, archiveDDL), perr.ErrorCodeDB, "create hotlist archive")
}

// Write flattens hl into one row per article; clustered lists share a rank per cluster
func (a *CHArchive) Write(ctx context.Context, runID string, hl hotlist.HotList) error {
	rows := Rows(runID, a.now().UTC(), hl)
	if len(rows) == 0 {
		return nil
	}
	return perr.WrapIf(a.ch.Insert(ctx, ArchiveTable, rows), perr.ErrorCodeDB, "insert hotlist archive")
}

// Rows is the archive projection of hl, in archive column order
func Rows(runID string, at time.Time, hl hotlist.HotList) [][]any {
	mode := hl.Mode()
	var rows [][]any
	add := func(rank, cluster int, art hotlist.Article) {
		rows = append(rows, []any{
			runID, at, mode, uint32(rank), uint32(cluster),
			art.Hash, art.URL, art.Hotness, uint32(art.Posts), art.Age,
		})
	}
	for i, art := range hl.Articles {
		add(i+1, 0, art)
	}
	for ci, members := range hl.Clusters {
		for _, art := range members {
			add(ci+1, ci+1, art)
		}
	}
	return rows
}
