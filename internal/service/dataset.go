package service

import (
	"Orbit/internal/model"
	"Orbit/internal/pkg/analytics"
)

// toDataset decodes repository rows into engine records
func toDataset(posts []*model.Post, samples []*model.PostAnalytics, accounts []*model.SocialAccount) analytics.Dataset {
	ds := analytics.Dataset{
		Posts:    make([]analytics.Post, 0, len(posts)),
		Samples:  make([]analytics.AnalyticsSample, 0, len(samples)),
		Accounts: make([]analytics.SocialAccount, 0, len(accounts)),
	}
	for _, p := range posts {
		ds.Posts = append(ds.Posts, analytics.Post{
			ID:        p.ID,
			BrandID:   p.BrandID,
			Platform:  deref(p.Platform),
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Metadata: analytics.PostMetadata{
				Platform:    p.Metadata.Platform,
				PublishedAt: p.Metadata.PublishedAt,
				Followers:   p.Metadata.Followers,
			},
		})
	}
	for _, s := range samples {
		ds.Samples = append(ds.Samples, analytics.AnalyticsSample{
			PostID:      s.PostID,
			Date:        s.MetricDate,
			Likes:       analytics.CoerceCount(s.Likes),
			Comments:    analytics.CoerceCount(s.Comments),
			Shares:      analytics.CoerceCount(s.Shares),
			Impressions: analytics.CoerceCount(s.Impressions),
			Metadata: analytics.SampleMetadata{
				Reach:  s.Metadata.Reach,
				Clicks: s.Metadata.Clicks,
				Views:  s.Metadata.Views,
			},
		})
	}
	for _, a := range accounts {
		ds.Accounts = append(ds.Accounts, analytics.SocialAccount{
			ID:        a.ID,
			BrandID:   a.BrandID,
			Platform:  a.Platform,
			Followers: analytics.CoerceCount(a.PlatformSpecificData.Followers),
		})
	}
	return ds
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
