// Package service implements inline enrichment and the backlog sweep
package service

import (
	"context"
	"errors"
	"time"

	"chatter/internal/core/extract"
	"chatter/internal/modkit/repokit"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"
	dom "chatter/internal/services/enrich/domain"
)

// ErrDisabled is returned by the sweep when no classifier is configured
var ErrDisabled = errors.New("enrich: classifier disabled")

// Config controls sweep pacing and claims
type Config struct {
	// Owner tags classify claims taken by this process
	Owner      string
	ClaimTTL   time.Duration
	SweepBatch int
	SweepPause time.Duration
	SweepIdle  time.Duration
}

// Service wires TxRunner + Binder into the enrichment operations
type Service struct {
	DB         repokit.TxRunner
	Binder     repokit.Binder[dom.StorageRepo]
	Classifier dom.Classifier
	Cfg        Config

	log   logger.Logger
	sleep func(context.Context, time.Duration) error
}

// New constructs the enrichment service
func New(db repokit.TxRunner, binder repokit.Binder[dom.StorageRepo], cls dom.Classifier, cfg Config) *Service {
	if db == nil {
		panic("enrich.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("enrich.Service requires a non nil Repo binder")
	}
	if cls == nil {
		panic("enrich.Service requires a non nil Classifier")
	}
	if cfg.Owner == "" {
		cfg.Owner = "enrich"
	}
	if cfg.ClaimTTL <= 0 {
		cfg.ClaimTTL = 2 * time.Minute
	}
	if cfg.SweepBatch <= 0 {
		cfg.SweepBatch = 5
	}
	if cfg.SweepIdle <= 0 {
		cfg.SweepIdle = 30 * time.Second
	}
	return &Service{
		DB:         db,
		Binder:     binder,
		Classifier: cls,
		Cfg:        cfg,
		log:        *logger.Named("enrich"),
		sleep:      sleepCtx,
	}
}

// Prepare extracts title and description then classifies under a claim.
// Nothing is written to canonical_links or topics here
func (s *Service) Prepare(ctx context.Context, p dom.Page) dom.Enrichment {
	meta := extract.Page(p.Body, p.ContentType)
	e := dom.Enrichment{Meta: dom.Metadata{
		CanonicalID: p.CanonicalID,
		URL:         p.URL,
		Host:        p.Host,
		Title:       meta.Title,
		Description: meta.Description,
	}}
	if !s.Classifier.Enabled() {
		return e
	}
	claimed, err := s.claim(ctx, p.CanonicalID)
	if err != nil {
		s.log.Error().Err(err).Str("canonical_id", p.CanonicalID).Msg("classify claim failed")
		return e
	}
	if !claimed {
		s.log.Debug().Str("canonical_id", p.CanonicalID).Msg("classification claimed elsewhere or done")
		return e
	}
	e.Claimed = true
	e.Topics = s.classify(ctx, meta.Title, meta.Description)
	return e
}

// Commit emits metadata for every enrichment, then topics, then releases claims.
// It returns the canonical ids left without a metadata row
func (s *Service) Commit(ctx context.Context, es []dom.Enrichment) []string {
	var missing []string
	lost := map[string]bool{}
	for _, e := range es {
		err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).InsertCanonicalMetadata(ctx, e.Meta)
		})
		if err != nil {
			metrics.StoreWriteFailures.WithLabelValues("canonical_metadata").Inc()
			s.log.Error().Err(err).Str("canonical_id", e.Meta.CanonicalID).Msg("metadata write failed")
			if !lost[e.Meta.CanonicalID] {
				lost[e.Meta.CanonicalID] = true
				missing = append(missing, e.Meta.CanonicalID)
			}
		}
	}
	for _, e := range es {
		if !lost[e.Meta.CanonicalID] {
			s.writeTopics(ctx, e.Meta.CanonicalID, e.Topics)
		}
		if e.Claimed {
			s.release(ctx, e.Meta.CanonicalID)
		}
	}
	return missing
}

// SweepOnce classifies up to SweepBatch backlog links and returns how many it fetched
func (s *Service) SweepOnce(ctx context.Context) (int, error) {
	if !s.Classifier.Enabled() {
		return 0, ErrDisabled
	}
	var batch []dom.Unclassified
	if err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		batch, e = s.Binder.Bind(q).FetchUnclassified(ctx, s.Cfg.SweepBatch)
		return e
	}); err != nil {
		return 0, err
	}

	for _, u := range batch {
		if ctx.Err() != nil {
			return len(batch), ctx.Err()
		}
		claimed, err := s.claim(ctx, u.CanonicalID)
		if err != nil {
			s.log.Error().Err(err).Str("canonical_id", u.CanonicalID).Msg("classify claim failed")
			continue
		}
		if !claimed {
			continue
		}
		topics := s.classify(ctx, u.Title, u.Description)
		s.writeTopics(ctx, u.CanonicalID, topics)
		s.release(ctx, u.CanonicalID)
	}
	return len(batch), nil
}

// Sweep polls the backlog until ctx is done: SweepPause between batches,
// SweepIdle when a batch comes back empty
func (s *Service) Sweep(ctx context.Context) error {
	if !s.Classifier.Enabled() {
		return ErrDisabled
	}
	s.log.Info().Int("batch", s.Cfg.SweepBatch).Msg("backlog sweep started")
	for {
		n, err := s.SweepOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		wait := s.Cfg.SweepPause
		switch {
		case err != nil:
			s.log.Error().Err(err).Msg("backlog sweep batch failed")
			wait = s.Cfg.SweepIdle
		case n == 0:
			wait = s.Cfg.SweepIdle
		}
		if err := s.sleep(ctx, wait); err != nil {
			return nil
		}
	}
}

// classify maps skip and exhaustion to the none sentinel; a cancelled ctx yields nothing
func (s *Service) classify(ctx context.Context, title, content string) []dom.Topic {
	topics, err := s.Classifier.Classify(ctx, title, content)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("classification gave up; recording none")
		return []dom.Topic{{Label: dom.NoneLabel, Score: 1}}
	}
	if len(topics) == 0 {
		metrics.ClassifierRequests.WithLabelValues("empty").Inc()
		return []dom.Topic{{Label: dom.NoneLabel, Score: 1}}
	}
	metrics.ClassifierRequests.WithLabelValues("ok").Inc()
	return topics
}

func (s *Service) writeTopics(ctx context.Context, id string, ts []dom.Topic) {
	if len(ts) == 0 {
		return
	}
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).InsertTopics(ctx, id, ts)
	})
	if err != nil {
		metrics.StoreWriteFailures.WithLabelValues("topics").Inc()
		s.log.Error().Err(err).Str("canonical_id", id).Msg("topic write failed")
	}
}

func (s *Service) claim(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		ok, e = s.Binder.Bind(q).Claim(ctx, id, s.Cfg.Owner, s.Cfg.ClaimTTL)
		return e
	})
	return ok, err
}

func (s *Service) release(ctx context.Context, id string) {
	rctx := context.WithoutCancel(ctx)
	err := s.DB.Tx(rctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).Release(rctx, id, s.Cfg.Owner)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("canonical_id", id).Msg("claim release failed; it will expire")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
