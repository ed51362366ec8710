// Package repo provides the postgres domains repository
package repo

import (
	"context"

	"chatter/internal/modkit/repokit"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/store"
	dom "chatter/internal/services/domains/domain"
)

// NewPG returns a binder over postgres
func NewPG() repokit.Binder[dom.StorageRepo] {
	return repokit.BindFunc[dom.StorageRepo](func(q repokit.Queryer) dom.StorageRepo {
		return &pgRepo{q: q}
	})
}

type pgRepo struct{ q repokit.Queryer }

// AddDomains inserts recs, ignoring rows already present, and returns how many were new
func (r *pgRepo) AddDomains(ctx context.Context, recs []dom.Record) (int, error) {
	added := 0
	for _, rec := range recs {
		tag, err := r.q.Exec(ctx, `
			INSERT INTO domains (domain_set, domain, subset)
			VALUES ($1, $2, $3)
			ON CONFLICT (domain_set, domain, subset) DO NOTHING`,
			rec.Set, rec.Domain, rec.Subset,
		)
		if err != nil {
			return added, perr.Wrapf(err, perr.ErrorCodeDB, "add domain %q", rec.Domain)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}

func (r *pgRepo) RemoveAll(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `TRUNCATE TABLE domains`)
	return perr.FromPostgres(err, "truncate domains")
}

func (r *pgRepo) ListDomains(ctx context.Context) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var d string
		err := row.Scan(&d)
		return d, err
	}, `SELECT DISTINCT domain FROM domains ORDER BY domain`)
	return out, perr.FromPostgres(err, "list domains")
}
