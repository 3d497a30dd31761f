package core

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule names the tier that decided a query pair.
type Rule int

const (
	RuleDefault Rule = iota // kept, nothing matched
	RuleExact
	RulePrefix
	RuleAllowlist
	RuleValueShape
	RuleSite // dropped by a site handler
)

var ruleNames = [...]string{
	RuleDefault:    "default",
	RuleExact:      "exact",
	RulePrefix:     "prefix",
	RuleAllowlist:  "allowlist",
	RuleValueShape: "value_shape",
	RuleSite:       "site",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return "unknown"
	}
	return ruleNames[r]
}

func (r Rule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Removes reports whether the pair is dropped under r.
func (r Rule) Removes() bool {
	return r == RuleExact || r == RulePrefix || r == RuleValueShape || r == RuleSite
}

// maxShortName is the longest name the value-shape heuristic applies to.
const maxShortName = 3

// RuleSet is the generic tracking classifier. It is immutable after construction.
type RuleSet struct {
	exact     map[string]struct{}
	prefixes  []string
	shapes    []*regexp.Regexp
	preserve  map[string]struct{}
	fragments *regexp.Regexp
}

// NewRuleSet lowercases every name and prefix.
func NewRuleSet(exact, prefixes, preserve []string, shapes []*regexp.Regexp, fragments *regexp.Regexp) *RuleSet {
	rs := &RuleSet{
		exact:     toSet(exact),
		preserve:  toSet(preserve),
		shapes:    shapes,
		fragments: fragments,
	}
	for _, p := range prefixes {
		rs.prefixes = append(rs.prefixes, strings.ToLower(p))
	}
	return rs
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[strings.ToLower(n)] = struct{}{}
	}
	return m
}

// Classify decides one pair. Order: exact, prefix, allowlist, value shape.
func (rs *RuleSet) Classify(name, value string) Rule {
	lower := strings.ToLower(name)
	if _, ok := rs.exact[lower]; ok {
		return RuleExact
	}
	for _, p := range rs.prefixes {
		if strings.HasPrefix(lower, p) {
			return RulePrefix
		}
	}
	if _, ok := rs.preserve[lower]; ok {
		return RuleAllowlist
	}
	if utf8.RuneCountInString(name) <= maxShortName && rs.looksOpaque(value) {
		return RuleValueShape
	}
	return RuleDefault
}

func (rs *RuleSet) looksOpaque(value string) bool {
	for _, re := range rs.shapes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// TrackingFragment reports whether an escaped fragment is tracking cruft.
func (rs *RuleSet) TrackingFragment(fragment string) bool {
	return fragment != "" && rs.fragments != nil && rs.fragments.MatchString(fragment)
}

// queryPair is one &-separated element of a raw query.
type queryPair struct {
	raw   string
	key   string
	value string
}

// splitQuery keeps the raw text of every non-empty pair alongside its decoded
// key and value.
func splitQuery(rawQuery string) []queryPair {
	if rawQuery == "" {
		return nil
	}
	var pairs []queryPair
	for _, seg := range strings.Split(rawQuery, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		pairs = append(pairs, queryPair{raw: seg, key: unescapeLoose(k), value: unescapeLoose(v)})
	}
	return pairs
}

func unescapeLoose(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return strings.ReplaceAll(s, "+", " ")
}

// filter applies rs to u in place and returns the decision for every pair.
func (rs *RuleSet) filter(u *url.URL) ([]Decision, bool) {
	pairs := splitQuery(u.RawQuery)
	decisions := make([]Decision, 0, len(pairs))
	kept := make([]string, 0, len(pairs))
	for _, p := range pairs {
		r := rs.Classify(p.key, p.value)
		decisions = append(decisions, Decision{Key: p.key, Value: p.value, Rule: r})
		if !r.Removes() {
			kept = append(kept, p.raw)
		}
	}
	if len(kept) < len(pairs) {
		u.RawQuery = strings.Join(kept, "&")
		if len(kept) == 0 {
			u.ForceQuery = false
		}
	}

	fragmentCleared := false
	if rs.TrackingFragment(u.EscapedFragment()) {
		u.Fragment = ""
		u.RawFragment = ""
		fragmentCleared = true
	}
	return decisions, fragmentCleared
}

// DefaultRules is the process-wide generic rule set.
var DefaultRules = NewRuleSet(
	[]string{
		// click ids
		"fbclid", "gclid", "gclsrc", "dclid", "msclkid", "twclid", "ttclid",
		"li_fat_id", "yclid", "wbraid", "gbraid", "rdt_cid", "sc_cid", "spm",
		"_kx", "tblci", "oborigurl", "outbrainclickid",
		// referrer / source
		"ref", "referrer", "source", "campaign", "trk", "mkt_tok",
		// analytics ids
		"_ga", "_gl", "_ke", "cid", "igshid", "si", "feature",
		// hubspot
		"__hsfp", "__hssc", "__hstc", "hsctaTracking",
		// email / crm
		"mktoid", "__s",
		"xtor", "share_source_id", "share_source_type",
		"_branch_match_id", "adjust_tracker", "adjust_campaign", "adjust_adgroup",
		"pi_campaign_id", "pi_contact_id",
	},
	[]string{
		"utm_", "fbclid", "gclid", "msclkid",
		"__hs", "_hs", "hsa_",
		"mc_", "fb_", "tt_", "at_",
		"mtm_", "pk_", "ns_", "stm_",
		"aff_", "ref_", "oly_", "vero_", "ml_", "nr_", "dm_",
		"wickedid",
	},
	[]string{
		// search
		"q", "query", "search", "s", "keyword", "keywords",
		// pagination
		"page", "p", "offset", "limit", "per_page", "start",
		// sort / filter
		"sort", "order", "filter", "category", "type", "tag", "tags",
		// auth / session
		"token", "code", "state",
		// content ids
		"id", "v", "t", "item", "product", "sku", "slug",
		// locale
		"lang", "language", "locale", "hl", "gl",
		// ui state
		"view", "mode", "tab", "section",
	},
	[]*regexp.Regexp{
		regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`),
		regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`),
	},
	regexp.MustCompile(`(?i)^(xtor|utm|pk_|mtm_)`),
)
