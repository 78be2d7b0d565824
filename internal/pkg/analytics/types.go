package analytics

import (
	"strings"
	"time"
)

// PostMetadata optional per-post fields reported by the posting API
type PostMetadata struct {
	Platform    *string `json:"platform,omitempty"`
	Followers   *int64  `json:"followers,omitempty"`
	PublishedAt *string `json:"publishedAt,omitempty"`
}

// Post published or scheduled content
type Post struct {
	ID        uint64
	BrandID   uint64
	Platform  string
	Content   string
	CreatedAt time.Time
	Metadata  PostMetadata
}

// PlatformName reads the direct platform field, falling back to metadata only when
// the direct field is absent.
func (p Post) PlatformName() string {
	if strings.TrimSpace(p.Platform) != "" {
		return p.Platform
	}
	if p.Metadata.Platform != nil {
		return *p.Metadata.Platform
	}
	return ""
}

// CanonicalPlatform normalized platform of the post.
func (p Post) CanonicalPlatform() Platform {
	return Normalize(p.PlatformName())
}

// Date publishedAt when parsable, otherwise created_at. ok is false when neither
// carries a usable instant.
func (p Post) Date() (time.Time, bool) {
	if p.Metadata.PublishedAt != nil {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(*p.Metadata.PublishedAt)); err == nil {
			return t, true
		}
	}
	if p.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	return p.CreatedAt, true
}

// FollowerSnapshot follower count carried in metadata, 0 when absent.
func (p Post) FollowerSnapshot() int64 {
	if p.Metadata.Followers == nil || *p.Metadata.Followers < 0 {
		return 0
	}
	return *p.Metadata.Followers
}

// SampleMetadata optional per-sample counters
type SampleMetadata struct {
	Reach  *int64 `json:"reach,omitempty"`
	Clicks *int64 `json:"clicks,omitempty"`
	Views  *int64 `json:"views,omitempty"`
}

// AnalyticsSample one daily metrics row for a post
type AnalyticsSample struct {
	PostID      uint64
	Date        time.Time
	Likes       int64
	Comments    int64
	Shares      int64
	Impressions int64
	Metadata    SampleMetadata
}

// Engagement likes + comments + shares.
func (s AnalyticsSample) Engagement() int64 {
	return s.Likes + s.Comments + s.Shares
}

// SocialAccount cumulative snapshot of a connected account
type SocialAccount struct {
	ID        uint64
	BrandID   uint64
	Platform  string
	Followers int64
}

// Bucket accumulated metrics for one granularity unit
type Bucket struct {
	Key         string `json:"key"`
	Followers   int64  `json:"followers"`
	Impressions int64  `json:"impressions"`
	Engagement  int64  `json:"engagement"`
	SampleCount int    `json:"sample_count"`
}

// Dataset raw rows for one dashboard computation
type Dataset struct {
	Posts    []Post
	Samples  []AnalyticsSample
	Accounts []SocialAccount
}

// CoerceCount maps nil and negative counters to 0.
func CoerceCount(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
