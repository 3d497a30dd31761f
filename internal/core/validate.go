package core

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether text, once trimmed, is an absolute http or https URL.
func IsValidURL(text string) bool {
	_, ok := parseCandidate(text)
	return ok
}

// parseCandidate trims and parses text. The returned URL has a lowercased host.
func parseCandidate(text string) (*url.URL, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	// url.Parse already lowercases the scheme.
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, false
	}
	if u.Opaque != "" || u.Hostname() == "" {
		return nil, false
	}
	u.Host = strings.ToLower(u.Host)
	return u, true
}

// cloneURL copies u so handlers can mutate freely. *url.Userinfo is immutable
// and safe to share.
func cloneURL(u *url.URL) *url.URL {
	uu := *u
	return &uu
}
