package analytics

import (
	"sort"
	"time"
	"unicode/utf8"
)

const contentPreviewRunes = 140

// ScoreWeights weights of the top-post relevance score
type ScoreWeights struct {
	Rate   float64
	Volume float64
}

// DefaultScoreWeights favour engagement rate over raw volume.
var DefaultScoreWeights = ScoreWeights{Rate: 0.7, Volume: 0.3}

// PostRow one row of the top-post table
type PostRow struct {
	PostID         uint64   `json:"post_id"`
	Score          float64  `json:"score"`
	EngagementRate float64  `json:"engagement_rate"`
	Engagement     int64    `json:"engagement"`
	Impressions    int64    `json:"impressions"`
	Date           string   `json:"date"`
	Content        string   `json:"content"`
	Platform       Platform `json:"platform"`
}

// Score weighted combination of engagement rate and engagement volume.
func (w ScoreWeights) Score(rate float64, engagement int64) float64 {
	return Round1(w.Rate*rate + w.Volume*float64(engagement))
}

// TopPosts ranks posts dated in range or with in-range samples, best first.
func (s Scoped) TopPosts(n int, w ScoreWeights, loc *time.Location) []PostRow {
	if n <= 0 {
		return []PostRow{}
	}
	if loc == nil {
		loc = time.UTC
	}

	type agg struct {
		engagement  int64
		impressions int64
	}
	sums := make(map[uint64]*agg)
	candidates := make([]Post, 0, len(s.PostsInRange))
	seen := make(map[uint64]bool)

	for _, p := range s.PostsInRange {
		if !seen[p.ID] {
			seen[p.ID] = true
			candidates = append(candidates, p)
		}
	}
	for _, smp := range s.Samples {
		p, ok := s.Index[smp.PostID]
		if !ok {
			continue
		}
		if !seen[p.ID] {
			seen[p.ID] = true
			candidates = append(candidates, p)
		}
		a, ok := sums[p.ID]
		if !ok {
			a = &agg{}
			sums[p.ID] = a
		}
		a.engagement += smp.Engagement()
		a.impressions += smp.Impressions
	}

	rows := make([]PostRow, 0, len(candidates))
	for _, p := range candidates {
		var engagement, impressions int64
		if a, ok := sums[p.ID]; ok {
			engagement, impressions = a.engagement, a.impressions
		}
		rate := EngagementRate(engagement, impressions)

		var date string
		if t, ok := p.Date(); ok {
			date = t.In(loc).Format(time.DateOnly)
		}

		rows = append(rows, PostRow{
			PostID:         p.ID,
			Score:          w.Score(rate, engagement),
			EngagementRate: rate,
			Engagement:     engagement,
			Impressions:    impressions,
			Date:           date,
			Content:        preview(p.Content),
			Platform:       p.CanonicalPlatform(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].PostID < rows[j].PostID
	})

	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= contentPreviewRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:contentPreviewRunes]) + "…"
}
