package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDefaultRules(t *testing.T) {
	tests := []struct {
		name, value string
		want        Rule
	}{
		{"fbclid", "abc", RuleExact},
		{"hsctaTracking", "1", RuleExact},
		{"utm_whatever", "x", RulePrefix},
		{"Pk_Kwd", "x", RulePrefix},
		{"ref", "home", RuleExact},
		{"ref_src", "twsrc", RulePrefix},
		{"q", "golang", RuleAllowlist},
		{"id", "aB3dE5gH7jK9mN1pQ3sT5vX7z", RuleAllowlist},
		{"v", "123e4567-e89b-12d3-a456-426614174000", RuleAllowlist},
		{"xid", "aB3dE5gH7jK9mN1pQ3sT5vX7z", RuleValueShape},
		{"k", "123E4567-E89B-12D3-A456-426614174000", RuleValueShape},
		{"xid", "aB3dE5gH7jK9mN1pQ3s", RuleDefault},
		{"abcd", "aB3dE5gH7jK9mN1pQ3sT5vX7z", RuleDefault},
		{"foo", "bar", RuleDefault},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DefaultRules.Classify(tc.name, tc.value), "%s=%s", tc.name, tc.value)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	rs := NewRuleSet(
		[]string{"dual"},
		[]string{"pre_"},
		[]string{"dual", "pre_keep", "ab"},
		[]*regexp.Regexp{regexp.MustCompile(`^z+$`)},
		nil,
	)

	assert.Equal(t, RuleExact, rs.Classify("dual", "z"), "exact beats allowlist")
	assert.Equal(t, RulePrefix, rs.Classify("pre_keep", "z"), "prefix beats allowlist")
	assert.Equal(t, RuleAllowlist, rs.Classify("ab", "zzz"), "allowlist beats value shape")
	assert.Equal(t, RuleValueShape, rs.Classify("cd", "zzz"))
	assert.False(t, rs.TrackingFragment("utm_source=x"), "no fragment pattern configured")
}

func TestRuleRemoves(t *testing.T) {
	assert.True(t, RuleExact.Removes())
	assert.True(t, RulePrefix.Removes())
	assert.True(t, RuleValueShape.Removes())
	assert.True(t, RuleSite.Removes())
	assert.False(t, RuleAllowlist.Removes())
	assert.False(t, RuleDefault.Removes())
	assert.Equal(t, "value_shape", RuleValueShape.String())
}

func TestTrackingFragment(t *testing.T) {
	assert.True(t, DefaultRules.TrackingFragment("xtor=RSS-1"))
	assert.True(t, DefaultRules.TrackingFragment("UTM_source=x"))
	assert.True(t, DefaultRules.TrackingFragment("mtm_campaign=y"))
	assert.False(t, DefaultRules.TrackingFragment("section-utm"))
	assert.False(t, DefaultRules.TrackingFragment(""))
}

func TestSplitQuery(t *testing.T) {
	pairs := splitQuery("a=1&&b=x+y&c&d=%zz")
	assert.Equal(t, []queryPair{
		{raw: "a=1", key: "a", value: "1"},
		{raw: "b=x+y", key: "b", value: "x y"},
		{raw: "c", key: "c", value: ""},
		{raw: "d=%zz", key: "d", value: "%zz"},
	}, pairs)
	assert.Nil(t, splitQuery(""))
}
