package core

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var reEmbeddedURL = regexp.MustCompile("(?i)https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

// ExtractURL finds the first http(s) URL in text. Text that is already a URL
// wins, then the first anchor of an HTML fragment, then the first URL-looking
// run of plain text.
func ExtractURL(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if IsValidURL(trimmed) {
		return trimmed, true
	}
	if strings.Contains(trimmed, "<") {
		if href, ok := firstAnchor(trimmed); ok {
			return href, true
		}
	}
	for _, m := range reEmbeddedURL.FindAllString(trimmed, -1) {
		m = trimTrailingPunct(m)
		if IsValidURL(m) {
			return m, true
		}
	}
	return "", false
}

// CleanText extracts a URL from text and cleans it. found is false when text
// holds no URL; the result is then the trimmed text, untouched.
func CleanText(text string) (res CleanResult, found bool) {
	u, ok := ExtractURL(text)
	if !ok {
		return CleanURL(text), false
	}
	return CleanURL(u), true
}

func firstAnchor(fragment string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", false
	}
	var found string
	var f func(*html.Node) bool
	f = func(node *html.Node) bool {
		if node.Type == html.ElementNode && strings.EqualFold(node.Data, "a") {
			for _, a := range node.Attr {
				if strings.EqualFold(a.Key, "href") {
					raw := strings.TrimSpace(a.Val)
					if IsValidURL(raw) {
						found = raw
						return true
					}
					break
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if f(c) {
				return true
			}
		}
		return false
	}
	ok := f(doc)
	return found, ok
}

// trimTrailingPunct drops sentence punctuation picked up after a URL in prose.
// A closing paren stays when the URL opened one, as in wiki links.
func trimTrailingPunct(s string) string {
	for s != "" {
		last := s[len(s)-1]
		switch {
		case strings.IndexByte(".,!?;:'", last) >= 0:
			s = s[:len(s)-1]
		case last == ')' && strings.Count(s, "(") < strings.Count(s, ")"):
			s = s[:len(s)-1]
		default:
			return s
		}
	}
	return s
}
