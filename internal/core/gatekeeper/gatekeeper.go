// Package gatekeeper decides whether a resolved host is worth tracking
package gatekeeper

import (
	"net/url"
	"strings"
)

// DefaultIgnore is the ignore set used when none is configured
var DefaultIgnore = []string{
	"twitter.com",
	"www.youtube.com",
	"www.facebook.com",
	"youtu.be",
	"www.instagram.com",
}

// Set is an immutable host set matched exactly against URL hosts (host[:port])
type Set struct{ hosts map[string]struct{} }

// New builds a Set; blank entries are dropped and hosts are lowercased
func New(hosts []string) Set {
	m := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			m[h] = struct{}{}
		}
	}
	return Set{hosts: m}
}

// Has reports exact membership
func (s Set) Has(host string) bool {
	_, ok := s.hosts[strings.ToLower(host)]
	return ok
}

// Len is the number of hosts in the set
func (s Set) Len() int { return len(s.hosts) }

// Allowed reports whether host is absent from the ignore set
func (s Set) Allowed(host string) bool { return !s.Has(host) }

// HostOf returns the host[:port] of raw, or "" when it does not parse
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
