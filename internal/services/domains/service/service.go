// Package service implements allow-list maintenance
package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"chatter/internal/modkit/repokit"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/logger"
	dom "chatter/internal/services/domains/domain"
)

// Service wires TxRunner + Binder into domain maintenance
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[dom.StorageRepo]
}

// New constructs the maintenance service
func New(db repokit.TxRunner, binder repokit.Binder[dom.StorageRepo]) *Service {
	if db == nil {
		panic("domains.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("domains.Service requires a non nil Repo binder")
	}
	return &Service{DB: db, Binder: binder}
}

// Import parses r fully before touching the store, then writes in one transaction
func (s *Service) Import(ctx context.Context, r io.Reader, reset bool) (dom.ImportReport, error) {
	recs, skipped, err := Parse(r)
	if err != nil {
		return dom.ImportReport{}, err
	}
	rep := dom.ImportReport{Skipped: skipped}
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		repo := repokit.MustBind(s.Binder, q)
		if reset {
			if err := repo.RemoveAll(ctx); err != nil {
				return err
			}
		}
		n, err := repo.AddDomains(ctx, recs)
		rep.Added = n
		return err
	})
	if err != nil {
		return dom.ImportReport{}, err
	}
	logger.C(ctx).Info().Int("added", rep.Added).Int("skipped", rep.Skipped).Bool("reset", reset).Msg("domains imported")
	return rep, nil
}

// List returns the distinct allowed domains
func (s *Service) List(ctx context.Context) ([]string, error) {
	var out []string
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.Binder.Bind(q).ListDomains(ctx)
		return e
	})
	return out, err
}

// Parse reads set,domain[,subset] rows. A leading domain_set header is skipped
// and rows missing a set or a domain are counted as skipped
func Parse(r io.Reader) ([]dom.Record, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var recs []dom.Record
	skipped := 0
	for first := true; ; first = false {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read domains csv")
		}
		field := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		if first && strings.EqualFold(field(0), "domain_set") {
			continue
		}
		rec := dom.Record{Set: field(0), Domain: strings.ToLower(field(1)), Subset: field(2)}
		if rec.Set == "" || rec.Domain == "" {
			logger.Named("domains").Warn().Strs("row", row).Msg("skipping row without set or domain")
			skipped++
			continue
		}
		recs = append(recs, rec)
	}
	return recs, skipped, nil
}
