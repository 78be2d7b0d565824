package analytics

// BuildSeries folds samples into buckets keyed by granularity. Followers take the
// max snapshot of owning posts; samples without an owner only add flow metrics.
func BuildSeries(samples []AnalyticsSample, posts []Post, g Granularity) map[string]*Bucket {
	return buildSeries(samples, indexPosts(posts), g)
}

func buildSeries(samples []AnalyticsSample, owners map[uint64]Post, g Granularity) map[string]*Bucket {
	series := make(map[string]*Bucket)
	for _, s := range samples {
		if s.Date.IsZero() {
			continue
		}
		key := BucketKey(s.Date, g)
		b, ok := series[key]
		if !ok {
			b = &Bucket{Key: key}
			series[key] = b
		}
		b.Impressions += s.Impressions
		b.Engagement += s.Engagement()
		b.SampleCount++

		if post, ok := owners[s.PostID]; ok {
			b.Followers = max(b.Followers, post.FollowerSnapshot())
		}
	}
	return series
}
