package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCleanArgs(t *testing.T) {
	out, _, err := execute(t, "",
		"https://example.com/?utm_source=x&id=5",
		"https://twitter.com/user/status/123?s=20",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/?id=5\nhttps://twitter.com/user/status/123\n", out)
}

func TestCleanStdin(t *testing.T) {
	stdin := "https://youtu.be/abc123?t=30\n\n  not a url  \n"
	out, _, err := execute(t, stdin)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123&t=30\nnot a url\n", out)
}

func TestCleanSummary(t *testing.T) {
	_, errOut, err := execute(t, "", "--summary",
		"https://example.com/?gclid=1&fbclid=2",
		"https://example.com/page?id=5",
		"hello",
	)
	require.NoError(t, err)
	assert.Equal(t, "Removed 2 tracking parameters\nURL is already clean\nNo URL found\n", errOut)
}

func TestCleanJSON(t *testing.T) {
	out, _, err := execute(t, "", "--json", `see "https://www.amazon.com/x/dp/B000123456?th=1"`)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://www.amazon.com/dp/B000123456", got["url"])
	assert.Equal(t, float64(1), got["removed"])
	assert.Equal(t, "marketplace", got["platform"])
	assert.Equal(t, true, got["found"])
}

func TestCleanExplain(t *testing.T) {
	out, _, err := execute(t, "", "--explain", "https://example.com/?utm_source=x&id=5#utm_a")
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com/?id=5\n")
	assert.Contains(t, out, "platform: generic")
	assert.Contains(t, out, "drop utm_source=x (exact)")
	assert.Contains(t, out, "keep id=5 (allowlist)")
	assert.Contains(t, out, "drop #fragment")
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "", "check", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "valid\thttps://example.com\n", out)

	out, _, err = execute(t, "", "check", "https://example.com", "ftp://example.com")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid\tftp://example.com")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "scrub version dev"))
}
