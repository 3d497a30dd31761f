package core

import "fmt"

// Platform identifies which handler produced a CleanResult.
type Platform int

const (
	PlatformGeneric Platform = iota
	PlatformVideo
	PlatformMicroblog
	PlatformImageSharing
	PlatformShortVideo
	PlatformForum
	PlatformAudio
	PlatformMarketplace
	PlatformSocial
	PlatformProfessional
)

var platformNames = [...]string{
	PlatformGeneric:      "generic",
	PlatformVideo:        "video",
	PlatformMicroblog:    "microblog",
	PlatformImageSharing: "image",
	PlatformShortVideo:   "short_video",
	PlatformForum:        "forum",
	PlatformAudio:        "audio",
	PlatformMarketplace:  "marketplace",
	PlatformSocial:       "social",
	PlatformProfessional: "professional",
}

func (p Platform) String() string {
	if p < 0 || int(p) >= len(platformNames) {
		return fmt.Sprintf("platform(%d)", int(p))
	}
	return platformNames[p]
}

func (p Platform) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

type CleanResult struct {
	URL      string   `json:"url"`
	Removed  int      `json:"removed"`
	Platform Platform `json:"platform"`
}

// Summary is the one-line message shown to whoever asked for the cleaning.
func (r CleanResult) Summary() string {
	switch r.Removed {
	case 0:
		return "URL is already clean"
	case 1:
		return "Removed 1 tracking parameter"
	default:
		return fmt.Sprintf("Removed %d tracking parameters", r.Removed)
	}
}

// Decision records how one query pair was judged.
type Decision struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Rule  Rule   `json:"rule"`
}

type Explanation struct {
	Input     string      `json:"input"`
	Result    CleanResult `json:"result"`
	Decisions []Decision  `json:"decisions"`
	// FragmentCleared is only ever set on the generic path.
	FragmentCleared bool `json:"fragment_cleared"`
}
