// Package repo provides the postgres raw link repository
package repo

import (
	"context"

	"chatter/internal/modkit/repokit"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/store"
	dom "chatter/internal/services/links/domain"
)

// NewPG returns a binder over postgres
func NewPG() repokit.Binder[dom.StorageRepo] {
	return repokit.BindFunc[dom.StorageRepo](func(q repokit.Queryer) dom.StorageRepo {
		return &pgRepo{q: q}
	})
}

type pgRepo struct{ q repokit.Queryer }

func (r *pgRepo) ListAllowedHosts(ctx context.Context) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var h string
		err := row.Scan(&h)
		return h, err
	}, `SELECT DISTINCT domain FROM domains`)
	return out, perr.FromPostgres(err, "list allowed hosts")
}

func (r *pgRepo) FetchPendingLinks(ctx context.Context, limit int) ([]dom.RawLink, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (dom.RawLink, error) {
		var l dom.RawLink
		err := row.Scan(&l.ObservedID, &l.ObservedURL, &l.Host)
		return l, err
	}, `
		SELECT observed_id, observed_url, host
		  FROM raw_links
		 WHERE canonical_id IS NULL
		 GROUP BY observed_id, observed_url, host
		 ORDER BY observed_id
		 LIMIT $1`, limit)
	return out, perr.FromPostgres(err, "fetch pending links")
}

func (r *pgRepo) UpsertResolvedLink(ctx context.Context, l dom.Resolved) error {
	_, err := r.q.Exec(ctx, `
		UPDATE raw_links
		   SET canonical_url = $2, canonical_id = $3, host = $4
		 WHERE observed_id = $1`,
		l.ObservedID, l.CanonicalURL, l.CanonicalID, l.Host,
	)
	return perr.FromPostgres(err, "upsert resolved link")
}

func (r *pgRepo) DeleteLink(ctx context.Context, observedID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM raw_links WHERE observed_id = $1`, observedID)
	return perr.FromPostgres(err, "delete link")
}
