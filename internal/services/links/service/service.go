// Package service runs the canonicalization poll loop
package service

import (
	"context"
	"time"

	"chatter/internal/adapters/resolver"
	"chatter/internal/core/canon"
	"chatter/internal/core/gatekeeper"
	"chatter/internal/modkit/repokit"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"
	edom "chatter/internal/services/enrich/domain"
	dom "chatter/internal/services/links/domain"
)

// Config controls paging and the retry budget
type Config struct {
	PageSize    int
	LowWater    int
	IdleSleep   time.Duration
	RetryBudget int
	// ShortURLLen is the length under which an unknown host is still resolved
	ShortURLLen int
}

// Service wires TxRunner + Binder into the canonicalizer
type Service struct {
	DB       repokit.TxRunner
	Binder   repokit.Binder[dom.StorageRepo]
	Resolver dom.Resolver
	Enricher dom.Enricher
	Ignore   gatekeeper.Set
	Book     *canon.RetryBook
	Cfg      Config

	log   logger.Logger
	sleep func(context.Context, time.Duration) error
}

// New constructs the canonicalizer; book may be nil for the default bounds
func New(
	db repokit.TxRunner,
	binder repokit.Binder[dom.StorageRepo],
	res dom.Resolver,
	enr dom.Enricher,
	ignore gatekeeper.Set,
	book *canon.RetryBook,
	cfg Config,
) *Service {
	if db == nil {
		panic("links.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("links.Service requires a non nil Repo binder")
	}
	if res == nil || enr == nil {
		panic("links.Service requires a Resolver and an Enricher")
	}
	if book == nil {
		book = canon.NewRetryBook(0, 0)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.RetryBudget <= 0 {
		cfg.RetryBudget = 3
	}
	if cfg.ShortURLLen <= 0 {
		cfg.ShortURLLen = 30
	}
	return &Service{
		DB:       db,
		Binder:   binder,
		Resolver: res,
		Enricher: enr,
		Ignore:   ignore,
		Book:     book,
		Cfg:      cfg,
		log:      *logger.Named("links"),
		sleep:    sleepCtx,
	}
}

// plan is everything one cycle will emit, gathered before any write
type plan struct {
	deletes  []string
	updates  []dom.Resolved
	enriched []edom.Enrichment
}

// Cycle fetches one page of pending links, decides each one sequentially,
// then emits deletes, metadata and topics, then identity updates.
// An identity update whose canonical metadata failed is held back so the link stays pending.
// Decisions already made are emitted even when ctx ends mid-page.
// Per-link failures are logged and never returned
func (s *Service) Cycle(ctx context.Context) (dom.CycleReport, error) {
	rep := dom.CycleReport{Outcomes: map[dom.Outcome]int{}}

	var allowed gatekeeper.Set
	var pending []dom.RawLink
	if err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.Binder, q)
		hosts, err := r.ListAllowedHosts(ctx)
		if err != nil {
			return err
		}
		allowed = gatekeeper.New(hosts)
		pending, err = r.FetchPendingLinks(ctx, s.Cfg.PageSize)
		return err
	}); err != nil {
		return rep, err
	}
	rep.Fetched = len(pending)
	s.log.Debug().Int("pending", rep.Fetched).Int("allowed_hosts", allowed.Len()).Msg("cycle start")

	var p plan
	for _, l := range pending {
		if ctx.Err() != nil {
			break
		}
		o := s.decide(ctx, l, allowed, &p)
		rep.Outcomes[o]++
		metrics.LinksProcessed.WithLabelValues(string(o)).Inc()
	}
	metrics.RetryBookSize.Set(float64(s.Book.Len()))

	rep.Failed = s.emit(context.WithoutCancel(ctx), p)
	return rep, nil
}

func (s *Service) decide(ctx context.Context, l dom.RawLink, allowed gatekeeper.Set, p *plan) dom.Outcome {
	host := l.Host
	if host == "" {
		host = gatekeeper.HostOf(l.ObservedURL)
	}
	identity := dom.Resolved{
		ObservedID:   l.ObservedID,
		CanonicalURL: l.ObservedURL,
		CanonicalID:  l.ObservedID,
		Host:         host,
	}

	// long URLs on unknown hosts are not worth a fetch
	if !allowed.Has(host) && len(l.ObservedURL) >= s.Cfg.ShortURLLen {
		p.updates = append(p.updates, identity)
		return dom.OutcomeSkipped
	}

	res, err := s.Resolver.Resolve(ctx, l.ObservedURL)
	if err != nil {
		if ctx.Err() != nil {
			return dom.OutcomeDeferred
		}
		n := s.Book.Fail(l.ObservedID)
		if n < s.Cfg.RetryBudget {
			s.log.Debug().Err(err).Str("observed_id", l.ObservedID).Int("failures", n).Msg("resolve failed; will retry")
			return dom.OutcomeDeferred
		}
		s.Book.Clear(l.ObservedID)
		s.log.Info().Err(err).Str("url", l.ObservedURL).Int("failures", n).Msg("retry budget spent; keeping observed url")
		p.updates = append(p.updates, identity)
		return dom.OutcomeFallback
	}
	s.Book.Clear(l.ObservedID)

	final := gatekeeper.HostOf(res.URL)
	if !s.Ignore.Allowed(final) {
		p.deletes = append(p.deletes, l.ObservedID)
		return dom.OutcomeIgnored
	}
	if res.NotFound() {
		identity.Host = final
		p.updates = append(p.updates, identity)
		return dom.OutcomeNotFound
	}

	cleaned := canon.Cleanse(res.URL)
	id := canon.Hash(cleaned)
	p.updates = append(p.updates, dom.Resolved{
		ObservedID:   l.ObservedID,
		CanonicalURL: cleaned,
		CanonicalID:  id,
		Host:         final,
	})
	if allowed.Has(final) {
		p.enriched = append(p.enriched, s.Enricher.Prepare(ctx, toPage(id, cleaned, final, res)))
	}
	return dom.OutcomeResolved
}

func toPage(id, url, host string, res resolver.Result) edom.Page {
	return edom.Page{
		CanonicalID: id,
		URL:         url,
		Host:        host,
		ContentType: res.ContentType,
		Body:        res.Body,
	}
}

// emit writes one statement per record so a failure only loses that record
func (s *Service) emit(ctx context.Context, p plan) int {
	failed := 0
	for _, id := range p.deletes {
		if err := s.write(ctx, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).DeleteLink(ctx, id)
		}); err != nil {
			failed++
			metrics.StoreWriteFailures.WithLabelValues("delete_link").Inc()
			s.log.Error().Err(err).Str("observed_id", id).Msg("delete failed")
		}
	}

	held := map[string]bool{}
	if len(p.enriched) > 0 {
		for _, id := range s.Enricher.Commit(ctx, p.enriched) {
			held[id] = true
		}
	}
	for _, u := range p.updates {
		if held[u.CanonicalID] {
			failed++
			s.log.Warn().Str("observed_id", u.ObservedID).Str("canonical_id", u.CanonicalID).Msg("no metadata row; link stays pending")
			continue
		}
		if err := s.write(ctx, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).UpsertResolvedLink(ctx, u)
		}); err != nil {
			failed++
			metrics.StoreWriteFailures.WithLabelValues("resolved_link").Inc()
			s.log.Error().Err(err).Str("observed_id", u.ObservedID).Msg("identity update failed")
		}
	}
	return failed
}

// write runs fn in its own transaction, once more when the failure is transient
func (s *Service) write(ctx context.Context, fn func(repokit.Queryer) error) error {
	err := s.DB.Tx(ctx, fn)
	if perr.IsRetryable(err) {
		err = s.DB.Tx(ctx, fn)
	}
	return err
}

// Run polls until ctx is done, sleeping IdleSleep only when a page comes back under LowWater
func (s *Service) Run(ctx context.Context) error {
	s.log.Info().
		Int("page_size", s.Cfg.PageSize).
		Int("retry_budget", s.Cfg.RetryBudget).
		Msg("canonicalizer started")
	for {
		rep, err := s.Cycle(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			s.log.Error().Err(err).Msg("cycle failed")
		} else if rep.Fetched > 0 {
			s.log.Info().
				Int("fetched", rep.Fetched).
				Int("resolved", rep.Outcomes[dom.OutcomeResolved]).
				Int("deferred", rep.Outcomes[dom.OutcomeDeferred]).
				Int("failed_writes", rep.Failed).
				Msg("cycle done")
		}
		if err != nil || rep.Fetched < s.Cfg.LowWater {
			if err := s.sleep(ctx, s.Cfg.IdleSleep); err != nil {
				return nil
			}
		}
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
