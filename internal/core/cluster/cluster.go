package cluster

// Greedy partitions indices 0..n-1. The smallest unclaimed index seeds each
// group; the group takes the seed plus every unclaimed index whose similarity
// to the seed exceeds threshold. Groups come out in seed order and members in
// index order.
func Greedy(n int, sim func(i, j int) float64, threshold float64) [][]int {
	claimed := make([]bool, n)
	var groups [][]int
	for seed := 0; seed < n; seed++ {
		if claimed[seed] {
			continue
		}
		group := []int{seed}
		claimed[seed] = true
		for j := seed + 1; j < n; j++ {
			if !claimed[j] && sim(seed, j) > threshold {
				group = append(group, j)
				claimed[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Clusterer groups documents whose latent vectors are closer than Threshold
type Clusterer struct {
	tok       *Tokenizer
	dims      int
	threshold float64
}

// New builds a Clusterer; dims <= 0 means 50 and threshold <= 0 means 0.8
func New(tok *Tokenizer, dims int, threshold float64) *Clusterer {
	if tok == nil {
		tok = NewTokenizer(nil)
	}
	if dims <= 0 {
		dims = 50
	}
	if threshold <= 0 {
		threshold = 0.8
	}
	return &Clusterer{tok: tok, dims: dims, threshold: threshold}
}

// Group returns index groups over docs, each doc in exactly one group
func (c *Clusterer) Group(docs []string) [][]int {
	vecs := Project(c.tok.Corpus(docs), c.dims)
	return Greedy(len(docs), func(i, j int) float64 {
		return Cosine(vecs[i], vecs[j])
	}, c.threshold)
}
