// Package normalize cleans scraped text before it is stored or tokenized.
//
// Clean is for display text (titles, descriptions): control bytes and invalid
// UTF-8 go, whitespace runs become one space. Fold is for matching: it also
// strips accents, folds fullwidth forms and case.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			cases.Fold(),
			norm.NFC,
		)
	},
}

// Clean sanitizes s and collapses whitespace runs to single spaces
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(Sanitize(s)), " ")
}

// Fold returns the matching form of s: cleaned, accent-stripped, width- and case-folded
func Fold(s string) string {
	s = Clean(s)
	if s == "" {
		return ""
	}
	tr := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Truncate cuts s to at most n runes without splitting a rune
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
