package analytics

import "strings"

// Platform canonical platform identifier
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformX         Platform = "x"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformThreads   Platform = "threads"
	PlatformUnknown   Platform = "unknown"
)

// AllScope disables platform or brand filtering.
const AllScope = "all"

// KnownPlatforms in display order.
var KnownPlatforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformX,
	PlatformLinkedIn,
	PlatformYouTube,
	PlatformTikTok,
	PlatformThreads,
}

var platformAliases = map[string]Platform{
	"instagram": PlatformInstagram,
	"facebook":  PlatformFacebook,
	"x":         PlatformX,
	"twitter":   PlatformX,
	"linkedin":  PlatformLinkedIn,
	"youtube":   PlatformYouTube,
	"tiktok":    PlatformTikTok,
	"threads":   PlatformThreads,
	"unknown":   PlatformUnknown,
}

// Normalize maps a raw platform string onto the canonical enumeration.
func Normalize(raw string) Platform {
	key := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := platformAliases[key]; ok {
		return p
	}
	return PlatformUnknown
}

// IsKnown reports whether p is one of KnownPlatforms.
func (p Platform) IsKnown() bool {
	return p != PlatformUnknown && platformAliases[string(p)] == p
}

func (p Platform) String() string {
	return string(p)
}

// ParsePlatformScope parses a platform query value. "all" and "" return ok with
// scoped=false.
func ParsePlatformScope(raw string) (p Platform, scoped bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == AllScope {
		return "", false
	}
	return Normalize(v), true
}
