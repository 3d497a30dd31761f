package core

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	reProductDP = regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`)
	reProductGP = regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})`)
)

// videoPathPrefixes carry the video id as the next path segment.
var videoPathPrefixes = []string{"/shorts/", "/embed/", "/live/"}

// applySite runs the handler for m.platform on u. u is owned by the handler.
func applySite(m hostMatch, u *url.URL) *url.URL {
	switch m.platform {
	case PlatformVideo:
		return canonicalVideo(m, u)
	case PlatformMarketplace:
		return canonicalProduct(u)
	case PlatformMicroblog, PlatformImageSharing, PlatformShortVideo, PlatformForum,
		PlatformAudio, PlatformSocial, PlatformProfessional:
		return stripAll(u)
	default:
		return u
	}
}

// stripAll drops the query and fragment; the path is the canonical identifier.
func stripAll(u *url.URL) *url.URL {
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u
}

func canonicalVideo(m hostMatch, u *url.URL) *url.URL {
	q := u.Query()
	var id string
	if m.domain == "youtu.be" {
		id = firstSegment(strings.TrimPrefix(u.Path, "/"))
	} else {
		id = q.Get("v")
		if id == "" {
			for _, p := range videoPathPrefixes {
				if rest, ok := strings.CutPrefix(u.Path, p); ok {
					id = firstSegment(rest)
					break
				}
			}
		}
	}
	if id == "" {
		return u
	}

	pairs := []string{"v=" + url.QueryEscape(id)}
	for _, k := range []string{"t", "list"} {
		if v := q.Get(k); v != "" {
			pairs = append(pairs, k+"="+url.QueryEscape(v))
		}
	}
	return &url.URL{
		Scheme:   "https",
		Host:     "www.youtube.com",
		Path:     "/watch",
		RawQuery: strings.Join(pairs, "&"),
	}
}

func firstSegment(p string) string {
	seg, _, _ := strings.Cut(p, "/")
	return seg
}

// canonicalProduct reduces a product page to /dp/<ASIN> on the same host.
func canonicalProduct(u *url.URL) *url.URL {
	p := u.EscapedPath()
	m := reProductDP.FindStringSubmatch(p)
	if m == nil {
		m = reProductGP.FindStringSubmatch(p)
	}
	if m == nil {
		return stripAll(u)
	}
	return &url.URL{Scheme: "https", Host: u.Hostname(), Path: "/dp/" + m[1]}
}
