// Package repo provides the aggregation read and the hot list archive
package repo

import (
	"context"
	"time"

	"chatter/internal/core/hotlist"
	"chatter/internal/modkit/repokit"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/store"
	dom "chatter/internal/services/hotlist/domain"
)

// NewPG returns a binder over postgres
func NewPG() repokit.Binder[dom.StorageRepo] {
	return repokit.BindFunc[dom.StorageRepo](func(q repokit.Queryer) dom.StorageRepo {
		return &pgRepo{q: q}
	})
}

type pgRepo struct{ q repokit.Queryer }

// aggregateSQL ages every link against the window end and keeps those first
// posted less than $3 hours before it
const aggregateSQL = `
	WITH win AS (SELECT now() - make_interval(days => $1, hours => $2) AS at)
	SELECT c.canonical_url,
	       count(DISTINCT p.author_id)::int AS posts,
	       min(p.created_at) AS first_seen,
	       (EXTRACT(epoch FROM (win.at - min(p.created_at))) / 3600)::float8 AS age,
	       c.canonical_id,
	       c.host,
	       COALESCE(c.title, ''),
	       COALESCE(c.description, ''),
	       ARRAY(SELECT t.label FROM topics t WHERE t.canonical_id = c.canonical_id ORDER BY t.score DESC, t.label) AS labels,
	       ARRAY(SELECT t.score FROM topics t WHERE t.canonical_id = c.canonical_id ORDER BY t.score DESC, t.label) AS scores
	  FROM raw_links r
	  JOIN posts p ON p.post_id = r.post_id
	  JOIN canonical_links c ON c.canonical_id = r.canonical_id
	 CROSS JOIN win
	 WHERE p.created_at < win.at
	 GROUP BY c.canonical_id, c.canonical_url, c.host, c.title, c.description, win.at
	HAVING win.at - min(p.created_at) < make_interval(hours => $3)
	 ORDER BY posts DESC, age ASC`

func (r *pgRepo) FetchAggregatedWindow(ctx context.Context, w dom.Window) ([]hotlist.Article, error) {
	out, err := store.Many(ctx, r.q, scanArticle, aggregateSQL, w.DaysAgo, w.HoursAgo, w.MaxAge)
	return out, perr.FromPostgres(err, "fetch aggregated window")
}

func scanArticle(row store.Row) (hotlist.Article, error) {
	var (
		a      hotlist.Article
		first  time.Time
		labels []string
		scores []float64
	)
	if err := row.Scan(&a.URL, &a.Posts, &first, &a.Age, &a.Hash, &a.Domain,
		&a.Title, &a.Description, &labels, &scores); err != nil {
		return a, err
	}
	a.FirstSeen = first.UTC()
	a.Topics = make([]hotlist.Topic, 0, len(labels))
	for i, l := range labels {
		if i < len(scores) {
			a.Topics = append(a.Topics, hotlist.Topic{Label: l, Score: scores[i]})
		}
	}
	return a, nil
}
