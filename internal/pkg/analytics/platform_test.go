package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"instagram", PlatformInstagram},
		{"  Instagram ", PlatformInstagram},
		{"FACEBOOK", PlatformFacebook},
		{"Twitter", PlatformX},
		{"twitter", PlatformX},
		{"x", PlatformX},
		{"LinkedIn", PlatformLinkedIn},
		{"youtube", PlatformYouTube},
		{"TikTok", PlatformTikTok},
		{"threads", PlatformThreads},
		{"", PlatformUnknown},
		{"   ", PlatformUnknown},
		{"myspace", PlatformUnknown},
		{"unknown", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Twitter", "x", " Threads", "bluesky", "", "YOUTUBE", "linkedin\n"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(string(once)), "input %q", in)
	}
	assert.Equal(t, Normalize("x"), Normalize("Twitter"))
	assert.Equal(t, PlatformX, Normalize("Twitter"))
}

func TestPlatformIsKnown(t *testing.T) {
	for _, p := range KnownPlatforms {
		assert.True(t, p.IsKnown(), string(p))
	}
	assert.False(t, PlatformUnknown.IsKnown())
	assert.False(t, Platform("twitter").IsKnown())
}

func TestParsePlatformScope(t *testing.T) {
	_, scoped := ParsePlatformScope("all")
	assert.False(t, scoped)
	_, scoped = ParsePlatformScope("")
	assert.False(t, scoped)

	p, scoped := ParsePlatformScope("Twitter")
	assert.True(t, scoped)
	assert.Equal(t, PlatformX, p)

	p, scoped = ParsePlatformScope("friendster")
	assert.True(t, scoped)
	assert.Equal(t, PlatformUnknown, p)
}
