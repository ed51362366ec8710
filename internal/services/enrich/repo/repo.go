// Package repo provides the postgres enrichment repository
package repo

import (
	"context"
	"fmt"
	"time"

	"chatter/internal/modkit/repokit"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/store"
	dom "chatter/internal/services/enrich/domain"
)

// NewPG returns a binder over postgres
func NewPG() repokit.Binder[dom.StorageRepo] {
	return repokit.BindFunc[dom.StorageRepo](func(q repokit.Queryer) dom.StorageRepo {
		return &pgRepo{q: q}
	})
}

type pgRepo struct{ q repokit.Queryer }

func (r *pgRepo) InsertCanonicalMetadata(ctx context.Context, m dom.Metadata) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO canonical_links (canonical_id, canonical_url, host, title, description)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		ON CONFLICT (canonical_id) DO NOTHING`,
		m.CanonicalID, m.URL, m.Host, m.Title, m.Description,
	)
	return perr.FromPostgres(err, "insert canonical metadata")
}

func (r *pgRepo) InsertTopics(ctx context.Context, canonicalID string, ts []dom.Topic) error {
	for _, t := range ts {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO topics (canonical_id, label, score)
			VALUES ($1, $2, $3)
			ON CONFLICT (canonical_id, label) DO NOTHING`,
			canonicalID, t.Label, t.Score,
		); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeDB, "insert topic %q", t.Label)
		}
	}
	return nil
}

func (r *pgRepo) FetchUnclassified(ctx context.Context, limit int) ([]dom.Unclassified, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (dom.Unclassified, error) {
		var u dom.Unclassified
		err := row.Scan(&u.CanonicalID, &u.Title, &u.Description)
		return u, err
	}, `
		SELECT c.canonical_id, COALESCE(c.title, ''), COALESCE(c.description, '')
		  FROM canonical_links c
		 WHERE NOT EXISTS (SELECT 1 FROM topics t WHERE t.canonical_id = c.canonical_id)
		   AND NOT EXISTS (
		       SELECT 1 FROM classify_claims k
		        WHERE k.canonical_id = c.canonical_id AND k.expires_at > now())
		 ORDER BY c.created_at, c.canonical_id
		 LIMIT $1`, limit)
	return out, perr.FromPostgres(err, "fetch unclassified")
}

// Claim takes the marker when no topics exist and no unexpired claim is held.
// An expired claim is taken over by the new owner
func (r *pgRepo) Claim(ctx context.Context, canonicalID, owner string, ttl time.Duration) (bool, error) {
	ok, err := store.Claimed(ctx, r.q, `
		INSERT INTO classify_claims (canonical_id, owner, expires_at)
		SELECT $1, $2, now() + ($3)::interval
		 WHERE NOT EXISTS (SELECT 1 FROM topics WHERE canonical_id = $1)
		ON CONFLICT (canonical_id) DO UPDATE
		   SET owner = EXCLUDED.owner, expires_at = EXCLUDED.expires_at
		 WHERE classify_claims.expires_at <= now()
		RETURNING true`,
		canonicalID, owner, interval(ttl),
	)
	return ok, perr.FromPostgres(err, "claim classification")
}

func (r *pgRepo) Release(ctx context.Context, canonicalID, owner string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM classify_claims WHERE canonical_id = $1 AND owner = $2`,
		canonicalID, owner,
	)
	return perr.FromPostgres(err, "release claim")
}

func interval(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("%d seconds", secs)
}
