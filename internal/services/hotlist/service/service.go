// Package service generates hot lists from the aggregation window
package service

import (
	"context"
	"time"

	"chatter/internal/core/hotlist"
	"chatter/internal/modkit/repokit"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"
	dom "chatter/internal/services/hotlist/domain"

	"github.com/google/uuid"
)

// Service wires TxRunner + Binder into hot list generation.
// Archive is optional; Grouper is used only for clustered requests
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[dom.StorageRepo]
	Grouper hotlist.Grouper
	Archive dom.Archive

	now func() time.Time
}

// New constructs the generator
func New(db repokit.TxRunner, binder repokit.Binder[dom.StorageRepo], g hotlist.Grouper, archive dom.Archive) *Service {
	if db == nil {
		panic("hotlist.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("hotlist.Service requires a non nil Repo binder")
	}
	return &Service{DB: db, Binder: binder, Grouper: g, Archive: archive, now: time.Now}
}

// Generate re-reads the window and assembles a fresh list; req must already be clamped
func (s *Service) Generate(ctx context.Context, req dom.HotListRequest) (hotlist.HotList, error) {
	start := time.Now()
	defer func() { metrics.HotlistSeconds.Observe(time.Since(start).Seconds()) }()

	var links []hotlist.Article
	if err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		links, e = s.Binder.Bind(q).FetchAggregatedWindow(ctx, dom.Window{
			MaxAge:   req.MaxAge,
			DaysAgo:  req.DaysAgo,
			HoursAgo: req.HoursAgo,
		})
		return e
	}); err != nil {
		return hotlist.HotList{}, err
	}

	hl := hotlist.Assemble(links, hotlist.Options{
		MaxResults: req.MaxResults,
		Cluster:    req.Cluster,
		Now:        s.now(),
	}, s.Grouper)
	metrics.HotlistGenerated.WithLabelValues(hl.Mode()).Inc()

	if s.Archive != nil {
		runID := uuid.NewString()
		if err := s.Archive.Write(ctx, runID, hl); err != nil {
			logger.C(ctx).Warn().Err(err).Str("run_id", runID).Msg("hotlist archive write failed")
		}
	}
	return hl, nil
}
