package analytics

import "time"

func ptr[T any](v T) *T {
	return &v
}

func post(id, brand uint64, platform string, created time.Time) Post {
	return Post{ID: id, BrandID: brand, Platform: platform, CreatedAt: created, Content: "post"}
}

func sample(postID uint64, date time.Time, impressions, likes, comments, shares int64) AnalyticsSample {
	return AnalyticsSample{
		PostID:      postID,
		Date:        date,
		Impressions: impressions,
		Likes:       likes,
		Comments:    comments,
		Shares:      shares,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
