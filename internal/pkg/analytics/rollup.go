package analytics

// PlatformStats per-platform aggregate
type PlatformStats struct {
	Platform    Platform `json:"platform"`
	Followers   int64    `json:"followers"`
	Impressions int64    `json:"impressions"`
	Engagement  int64    `json:"engagement"`
	PostCount   int      `json:"post_count"`
}

// Connected platforms without followers and posts are hidden from callers.
func (s PlatformStats) Connected() bool {
	return s.Followers > 0 || s.PostCount > 0
}

// Rollup aggregates one canonical platform. Followers are the max account snapshot,
// flow metrics are summed over samples owned by the platform's posts.
func Rollup(posts []Post, samples []AnalyticsSample, accounts []SocialAccount, p Platform) PlatformStats {
	return rollup(posts, indexPosts(posts), samples, accounts, p)
}

// Rollup over the scoped dataset. Samples resolve their owner against every scoped
// post so engagement on older posts still counts.
func (s Scoped) Rollup(p Platform) PlatformStats {
	return rollup(s.PostsInRange, s.Index, s.Samples, s.Accounts, p)
}

// RollupAll stats for every platform that has data, in display order.
func (s Scoped) RollupAll() []PlatformStats {
	out := make([]PlatformStats, 0, len(KnownPlatforms)+1)
	for _, p := range append(KnownPlatforms[:len(KnownPlatforms):len(KnownPlatforms)], PlatformUnknown) {
		st := s.Rollup(p)
		if st.Connected() {
			out = append(out, st)
		}
	}
	return out
}

func rollup(posts []Post, owners map[uint64]Post, samples []AnalyticsSample, accounts []SocialAccount, p Platform) PlatformStats {
	st := PlatformStats{Platform: p}

	for _, a := range accounts {
		if Normalize(a.Platform) == p {
			st.Followers = max(st.Followers, a.Followers)
		}
	}

	for _, post := range posts {
		if post.CanonicalPlatform() == p {
			st.PostCount++
		}
	}

	for _, s := range samples {
		owner, ok := owners[s.PostID]
		if !ok || owner.CanonicalPlatform() != p {
			continue
		}
		st.Impressions += s.Impressions
		st.Engagement += s.Engagement()
	}
	return st
}
