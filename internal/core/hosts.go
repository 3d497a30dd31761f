package core

import (
	"slices"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// hostRule matches hosts whose registrable domain is one of domains and whose
// remaining prefix is one of subdomains ("" is the bare domain).
type hostRule struct {
	platform   Platform
	domains    []string
	subdomains []string
}

// hostRules is evaluated in order. A domain must not appear in two rules.
var hostRules = []hostRule{
	{PlatformVideo, []string{"youtube.com", "youtu.be"}, []string{"", "www", "m"}},
	{PlatformMicroblog, []string{"twitter.com", "x.com"}, []string{"", "www", "mobile"}},
	{PlatformImageSharing, []string{"instagram.com"}, []string{"", "www"}},
	{PlatformShortVideo, []string{"tiktok.com"}, []string{"", "www"}},
	{PlatformForum, []string{"reddit.com"}, []string{"", "www", "old"}},
	{PlatformAudio, []string{"spotify.com"}, []string{"open"}},
	{PlatformMarketplace, []string{
		"amazon.com", "amazon.co.uk", "amazon.de", "amazon.fr", "amazon.it",
		"amazon.es", "amazon.ca", "amazon.com.au", "amazon.co.jp",
	}, []string{"", "www"}},
	{PlatformSocial, []string{"facebook.com"}, []string{"", "www", "m"}},
	{PlatformProfessional, []string{"linkedin.com"}, []string{"", "www"}},
}

// hostMatch is the outcome of matching a hostname against hostRules.
type hostMatch struct {
	platform Platform
	domain   string // registrable domain, e.g. "youtu.be"
}

// matchHost returns the first rule matching host. ok is false for hosts with
// no dedicated handler, including IPs and names publicsuffix rejects.
func matchHost(host string) (hostMatch, bool) {
	host = strings.ToLower(host)
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return hostMatch{}, false
	}
	sub := strings.TrimSuffix(strings.TrimSuffix(host, etld1), ".")
	for _, r := range hostRules {
		if slices.Contains(r.domains, etld1) && slices.Contains(r.subdomains, sub) {
			return hostMatch{platform: r.platform, domain: etld1}, true
		}
	}
	return hostMatch{}, false
}
