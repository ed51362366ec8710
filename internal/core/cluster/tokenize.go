// Package cluster groups near-duplicate stories by latent topic similarity
package cluster

import (
	_ "embed"
	"regexp"
	"strings"

	"chatter/internal/core/normalize"
)

//go:embed stoplist.txt
var defaultStoplist string

var wordSplit = regexp.MustCompile(`[^a-z0-9_']+`)

// DefaultStopWords returns the embedded English stop list
func DefaultStopWords() []string {
	return strings.Fields(defaultStoplist)
}

// Tokenizer splits documents into lowercase word tokens. It is immutable after New
type Tokenizer struct {
	stop map[string]struct{}
}

// NewTokenizer builds a tokenizer; nil stop uses DefaultStopWords
func NewTokenizer(stop []string) *Tokenizer {
	if stop == nil {
		stop = DefaultStopWords()
	}
	m := make(map[string]struct{}, len(stop))
	for _, w := range stop {
		m[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Tokenizer{stop: m}
}

// Tokenize folds doc and returns runs of [a-z0-9_'] that are not stop
// words and longer than one byte
func (t *Tokenizer) Tokenize(doc string) []string {
	var out []string
	for _, w := range wordSplit.Split(normalize.Fold(doc), -1) {
		if len(w) <= 1 {
			continue
		}
		if _, stop := t.stop[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Corpus tokenizes every doc and drops tokens seen exactly once across all of them
func (t *Tokenizer) Corpus(docs []string) [][]string {
	texts := make([][]string, len(docs))
	counts := make(map[string]int)
	for i, d := range docs {
		texts[i] = t.Tokenize(d)
		for _, w := range texts[i] {
			counts[w]++
		}
	}
	for i, text := range texts {
		kept := text[:0]
		for _, w := range text {
			if counts[w] > 1 {
				kept = append(kept, w)
			}
		}
		texts[i] = kept
	}
	return texts
}
