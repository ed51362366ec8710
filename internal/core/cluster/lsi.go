package cluster

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Project maps each tokenized text into a latent space of at most dims
// dimensions: a thin SVD of the term-document count matrix A = U S Vᵀ,
// with each document's count vector x projected as U_kᵀ x.
// Texts without tokens project to the zero vector.
func Project(texts [][]string, dims int) [][]float64 {
	vocab := vocabulary(texts)
	out := make([][]float64, len(texts))
	if len(vocab) == 0 || len(texts) == 0 || dims <= 0 {
		for i := range out {
			out[i] = []float64{}
		}
		return out
	}

	terms, docs := len(vocab), len(texts)
	a := mat.NewDense(terms, docs, nil)
	for j, text := range texts {
		for _, w := range text {
			i := vocab[w]
			a.Set(i, j, a.At(i, j)+1)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		for i := range out {
			out[i] = []float64{}
		}
		return out
	}
	var u mat.Dense
	svd.UTo(&u)
	k := rank(svd.Values(nil), dims)

	uk := u.Slice(0, terms, 0, k)
	var proj mat.Dense
	proj.Mul(uk.T(), a)
	for j := range texts {
		v := make([]float64, k)
		for d := 0; d < k; d++ {
			v[d] = proj.At(d, j)
		}
		out[j] = v
	}
	return out
}

// rank counts singular values that are not numerically zero, capped at dims.
// Values arrive in descending order.
func rank(sv []float64, dims int) int {
	if len(sv) == 0 {
		return 0
	}
	tol := sv[0] * 1e-10
	k := 0
	for _, s := range sv {
		if s <= tol || k == dims {
			break
		}
		k++
	}
	return k
}

func vocabulary(texts [][]string) map[string]int {
	seen := make(map[string]struct{})
	for _, t := range texts {
		for _, w := range t {
			seen[w] = struct{}{}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	vocab := make(map[string]int, len(words))
	for i, w := range words {
		vocab[w] = i
	}
	return vocab
}

// Cosine is the cosine similarity of a and b; 0 when either is zero or lengths differ
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
