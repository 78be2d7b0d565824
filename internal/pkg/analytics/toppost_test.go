package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreWeights(t *testing.T) {
	assert.Equal(t, 8.0, DefaultScoreWeights.Score(8, 8))
	assert.Equal(t, 3.5, ScoreWeights{Rate: 0.5, Volume: 0}.Score(7, 1000))
}

func TestTopPosts(t *testing.T) {
	r := DateRange{From: day(2025, 1, 1), To: EndOfDay(day(2025, 1, 7))}
	older := post(1, 1, "x", day(2024, 11, 1))
	ds := Dataset{
		Posts: []Post{
			older,
			post(2, 1, "instagram", day(2025, 1, 2)),
			post(3, 1, "instagram", day(2025, 1, 3)),
			post(4, 1, "tiktok", day(2025, 1, 4)),
		},
		Samples: []AnalyticsSample{
			sample(1, day(2025, 1, 2), 1000, 100, 0, 0),
			sample(2, day(2025, 1, 2), 100, 8, 0, 0),
			sample(3, day(2025, 1, 3), 100, 8, 0, 0),
		},
	}
	rows := Scope{Range: r}.Apply(ds).TopPosts(10, DefaultScoreWeights, time.UTC)

	require.Len(t, rows, 4)
	assert.Equal(t, []uint64{1, 3, 2, 4}, rowIDs(rows))

	assert.Equal(t, PostRow{
		PostID:         1,
		Score:          37,
		EngagementRate: 10,
		Engagement:     100,
		Impressions:    1000,
		Date:           "2024-11-01",
		Content:        "post",
		Platform:       PlatformX,
	}, rows[0])
	assert.Equal(t, 0.0, rows[3].Score)
}

func TestTopPostsLimit(t *testing.T) {
	r := DateRange{From: day(2025, 1, 1), To: EndOfDay(day(2025, 1, 7))}
	scoped := Scope{Range: r}.Apply(scenarioA())

	assert.Len(t, scoped.TopPosts(2, DefaultScoreWeights, nil), 2)
	assert.Empty(t, scoped.TopPosts(0, DefaultScoreWeights, nil))
}

func TestPreview(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, preview(short))

	long := strings.Repeat("é", 200)
	got := preview(long)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, 141, len([]rune(got)))
}

func rowIDs(rows []PostRow) []uint64 {
	out := make([]uint64, len(rows))
	for i, r := range rows {
		out[i] = r.PostID
	}
	return out
}
