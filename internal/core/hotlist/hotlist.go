// Package hotlist ranks aggregated links into the published hot list
package hotlist

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"chatter/internal/core/hotness"
)

// EmptyMessage is reported instead of an empty list
const EmptyMessage = "no links for specified parameters"

// Topic is a classifier label; it marshals as [label, score]
type Topic struct {
	Label string
	Score float64
}

// MarshalJSON renders the pair form used on the wire
func (t Topic) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Label, t.Score})
}

// Article is one canonical link with its window statistics
type Article struct {
	URL          string    `json:"url"`
	Posts        int       `json:"total_tweets"`
	FirstSeen    time.Time `json:"-"`
	FirstTweeted string    `json:"first_tweeted"`
	Age          float64   `json:"age"`
	Hash         string    `json:"hash"`
	Domain       string    `json:"domain"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Topics       []Topic   `json:"topics"`
	Hotness      float64   `json:"hotness"`
}

// Doc is the text used for similarity: title and description joined by a space
func (a Article) Doc() string {
	parts := make([]string, 0, 2)
	for _, s := range []string{a.Title, a.Description} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// HotList is the published document; exactly one of Articles, Clusters or Message is set
type HotList struct {
	GeneratedAt string      `json:"generated_at"`
	Articles    []Article   `json:"articles,omitempty"`
	Clusters    [][]Article `json:"clusters,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// Mode names the shape of the list for metrics and archives
func (h HotList) Mode() string {
	switch {
	case h.Message != "":
		return "empty"
	case h.Clusters != nil:
		return "clusters"
	default:
		return "articles"
	}
}

// Grouper partitions document indices into near-duplicate groups
type Grouper interface {
	Group(docs []string) [][]int
}

// Options controls assembly
type Options struct {
	MaxResults int
	Cluster    bool
	Now        time.Time
}

// Assemble scores links, optionally groups them, sorts by hotness descending
// and keeps the first MaxResults entries. Ties keep their input order.
func Assemble(links []Article, opt Options, g Grouper) HotList {
	out := HotList{GeneratedAt: ISO(opt.Now)}
	if len(links) == 0 {
		out.Message = EmptyMessage
		return out
	}

	scored := make([]Article, len(links))
	for i, l := range links {
		l.Hotness = hotness.Score(l.Age, l.Posts)
		if !l.FirstSeen.IsZero() {
			l.FirstTweeted = ISO(l.FirstSeen)
		}
		if l.Topics == nil {
			l.Topics = []Topic{}
		}
		scored[i] = l
	}

	if opt.Cluster && g != nil {
		out.Clusters = limit(clusters(scored, g), opt.MaxResults)
		return out
	}
	sortByHotness(scored)
	out.Articles = limit(scored, opt.MaxResults)
	return out
}

func clusters(scored []Article, g Grouper) [][]Article {
	docs := make([]string, len(scored))
	for i, a := range scored {
		docs[i] = a.Doc()
	}
	groups := g.Group(docs)

	type ranked struct {
		members []Article
		score   float64
	}
	all := make([]ranked, 0, len(groups))
	for _, idx := range groups {
		if len(idx) == 0 {
			continue
		}
		members := make([]Article, len(idx))
		hm := make([]hotness.Member, len(idx))
		for k, i := range idx {
			members[k] = scored[i]
			hm[k] = hotness.Member{AgeHours: scored[i].Age, Posts: scored[i].Posts}
		}
		sortByHotness(members)
		all = append(all, ranked{members: members, score: hotness.Group(hm)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	out := make([][]Article, len(all))
	for i, r := range all {
		out[i] = r.members
	}
	return out
}

func sortByHotness(a []Article) {
	sort.SliceStable(a, func(i, j int) bool { return a[i].Hotness > a[j].Hotness })
}

func limit[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// ISO formats t in UTC like 2024-03-01T12:00:00.123456Z; the fraction is
// omitted when there are no microseconds
func ISO(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}
