// Package canon derives canonical identities for observed URLs
package canon

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// TrackingPrefixes are query keys dropped by Cleanse, matched case-sensitively
var TrackingPrefixes = []string{"utm_", "fbclid", "gclid", "trk_"}

// Cleanse removes tracking parameters from the query of raw.
// Remaining segments keep their bytes and order and the fragment is kept.
// When nothing is removed raw is returned unchanged.
func Cleanse(raw string) string {
	base, frag := raw, ""
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		base, frag = raw[:i], raw[i:]
	}
	qi := strings.IndexByte(base, '?')
	if qi < 0 {
		return raw
	}

	segments := strings.Split(base[qi+1:], "&")
	kept := segments[:0:0]
	removed := false
	for _, seg := range segments {
		if isTracking(seg) {
			removed = true
			continue
		}
		if seg != "" {
			kept = append(kept, seg)
		}
	}
	if !removed {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	b.WriteString(base[:qi])
	if len(kept) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(kept, "&"))
	}
	b.WriteString(frag)
	return b.String()
}

func isTracking(seg string) bool {
	key, _, _ := strings.Cut(seg, "=")
	if k, err := url.QueryUnescape(key); err == nil {
		key = k
	}
	for _, p := range TrackingPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// Hash is the identity of a URL string: lowercase hex SHA-1 of its bytes
func Hash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
