package core

import (
	"net/url"
	"strings"
)

// CleanURL strips tracking data from text. Invalid input comes back trimmed
// with Removed == 0. CleanURL never panics and is safe for concurrent use.
func CleanURL(text string) CleanResult {
	res, _ := clean(text, DefaultRules)
	return res
}

// Explain cleans text like CleanURL and also reports every decision taken.
// ok is false when text is not a cleanable URL.
func Explain(text string) (Explanation, bool) {
	res, ex := clean(text, DefaultRules)
	if ex == nil {
		return Explanation{Input: strings.TrimSpace(text), Result: res}, false
	}
	return *ex, true
}

func clean(text string, rules *RuleSet) (res CleanResult, ex *Explanation) {
	trimmed := strings.TrimSpace(text)
	passthrough := CleanResult{URL: trimmed}
	defer func() {
		if recover() != nil {
			res, ex = passthrough, nil
		}
	}()

	orig, ok := parseCandidate(trimmed)
	if !ok {
		return passthrough, nil
	}
	ex = &Explanation{Input: trimmed}
	out := dispatch(orig, rules, ex)

	before := len(splitQuery(orig.RawQuery))
	after := len(splitQuery(out.RawQuery))
	res = CleanResult{
		URL:      reassemble(out),
		Removed:  max(0, before-after),
		Platform: ex.Result.Platform,
	}
	ex.Result = res
	return res, ex
}

// dispatch runs exactly one of the first matching site handler or the
// generic classifier on a copy of u.
func dispatch(u *url.URL, rules *RuleSet, ex *Explanation) *url.URL {
	work := cloneURL(u)
	m, ok := matchHost(u.Hostname())
	if !ok {
		ex.Result.Platform = PlatformGeneric
		ex.Decisions, ex.FragmentCleared = rules.filter(work)
		return work
	}
	ex.Result.Platform = m.platform
	out := applySite(m, work)
	ex.Decisions = siteDecisions(u.RawQuery, out.RawQuery)
	return out
}

// siteDecisions marks each original pair as kept or dropped by the handler.
// A pair survives when the rewritten query still carries the same key and
// value, wherever the handler placed it.
func siteDecisions(before, after string) []Decision {
	remaining := map[[2]string]int{}
	for _, p := range splitQuery(after) {
		remaining[[2]string{p.key, p.value}]++
	}
	var ds []Decision
	for _, p := range splitQuery(before) {
		k := [2]string{p.key, p.value}
		r := RuleSite
		if remaining[k] > 0 {
			remaining[k]--
			r = RuleDefault
		}
		ds = append(ds, Decision{Key: p.key, Value: p.value, Rule: r})
	}
	return ds
}

// reassemble serializes u. An empty query loses its marker; a '?' inside a
// query value or fragment is content and stays.
func reassemble(u *url.URL) string {
	if u.RawQuery == "" {
		u.ForceQuery = false
	}
	return u.String()
}
