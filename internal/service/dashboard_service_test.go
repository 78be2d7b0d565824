package service

import (
	"Orbit/internal/api/config"
	"Orbit/internal/api/dto"
	"Orbit/internal/model"
	"Orbit/internal/pkg/analytics"
	"Orbit/internal/pkg/consts"
	"Orbit/internal/pkg/monitoring"
	"Orbit/internal/pkg/redis"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	posts []*model.Post
	err   error
	calls atomic.Int32
}

func (f *fakePostRepo) ListByBrand(_ context.Context, brandID uint64) ([]*model.Post, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*model.Post, 0)
	for _, p := range f.posts {
		if brandID == 0 || p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetBrandIDByPostID(_ context.Context, postID uint64) (uint64, bool, error) {
	for _, p := range f.posts {
		if p.ID == postID {
			return p.BrandID, true, nil
		}
	}
	return 0, false, nil
}

type fakeAnalyticsRepo struct {
	samples []*model.PostAnalytics
}

func (f *fakeAnalyticsRepo) ListByDateRange(_ context.Context, _ uint64, from, to time.Time) ([]*model.PostAnalytics, error) {
	out := make([]*model.PostAnalytics, 0)
	for _, s := range f.samples {
		d := s.MetricDate.Format(time.DateOnly)
		if d >= from.Format(time.DateOnly) && d <= to.Format(time.DateOnly) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAccountRepo struct {
	accounts []*model.SocialAccount
}

func (f *fakeAccountRepo) ListByBrand(_ context.Context, brandID uint64) ([]*model.SocialAccount, error) {
	out := make([]*model.SocialAccount, 0)
	for _, a := range f.accounts {
		if brandID == 0 || a.BrandID == brandID {
			out = append(out, a)
		}
	}
	return out, nil
}

func i64(v int64) *int64   { return &v }
func str(v string) *string { return &v }

var testNow = time.Date(2025, 1, 7, 15, 0, 0, 0, time.UTC)

type fixture struct {
	mr      *miniredis.Miniredis
	posts   *fakePostRepo
	metrics *monitoring.Metrics
	svc     DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.SetClient(client)

	posts := &fakePostRepo{posts: []*model.Post{
		{ID: 1, BrandID: 7, Platform: str("instagram"), Content: "launch", CreatedAt: time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)},
		{ID: 2, BrandID: 7, Platform: str("Twitter"), Content: "thread", CreatedAt: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)},
		{ID: 3, BrandID: 8, Platform: str("linkedin"), Content: "other brand", CreatedAt: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)},
	}}
	samples := &fakeAnalyticsRepo{samples: []*model.PostAnalytics{
		{PostID: 1, MetricDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Likes: i64(10), Comments: i64(2), Shares: i64(3), Impressions: i64(100)},
		{PostID: 2, MetricDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Likes: i64(5), Impressions: i64(50)},
		{PostID: 3, MetricDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Likes: i64(-4), Impressions: nil},
	}}
	accounts := &fakeAccountRepo{accounts: []*model.SocialAccount{
		{ID: 1, BrandID: 7, Platform: "instagram", PlatformSpecificData: model.AccountData{Followers: i64(1000)}},
		{ID: 2, BrandID: 7, Platform: "twitter", PlatformSpecificData: model.AccountData{Followers: i64(400)}},
		{ID: 3, BrandID: 8, Platform: "linkedin", PlatformSpecificData: model.AccountData{Followers: i64(50)}},
	}}

	engine := analytics.NewEngine(analytics.WithClock(func() time.Time { return testNow }))
	metrics := monitoring.NewMetrics()
	svc := NewDashboardService(posts, samples, accounts, engine, &config.DashboardConfig{CacheTTL: 300, SyncedTTL: 900}, metrics)
	return &fixture{mr: mr, posts: posts, metrics: metrics, svc: svc}
}

func TestGetDashboardScopesToBrand(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.GetDashboard(context.Background(), &dto.DashboardQueryDTO{Brand: "7"})
	require.NoError(t, err)

	assert.Equal(t, "7", res.Brand)
	assert.Equal(t, dto.DateRangeDTO{From: "2025-01-01", To: "2025-01-07"}, res.Period)
	assert.Equal(t, int64(1400), res.Totals.Followers)
	assert.Equal(t, int64(150), res.Totals.Impressions)
	assert.Equal(t, int64(20), res.Totals.Engagement)
	assert.Equal(t, int64(2), res.Totals.Posts)
	assert.Equal(t, 13.3, res.Totals.EngagementRate)
	assert.Len(t, res.Series.Engagement, 7)
	assert.Equal(t, "all", res.Platforms[0].Platform)
	require.Len(t, res.TopPosts, 2)
	assert.Equal(t, uint64(1), res.TopPosts[0].PostID)
	assert.Equal(t, "instagram", res.TopPosts[0].Platform)
}

func TestGetDashboardIsCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &dto.DashboardQueryDTO{Brand: "7", Granularity: "day"}

	first, err := f.svc.GetDashboard(ctx, req)
	require.NoError(t, err)
	second, err := f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Brand: "7"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.posts.calls.Load())
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DashboardRequests.WithLabelValues(monitoring.CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DashboardRequests.WithLabelValues(monitoring.CacheHit)))

	members, err := f.mr.SMembers(consts.DashboardBrandKeysKey + "7")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "dashboard:cache:7:all:engagement:day:0:2025-01-01~2025-01-07", members[0])
	assert.Greater(t, f.mr.TTL(members[0]), time.Duration(0))
}

func TestInvalidateBrandDropsCachedEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Brand: "7"})
	require.NoError(t, err)
	_, err = f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Brand: "all"})
	require.NoError(t, err)

	require.NoError(t, f.svc.InvalidateBrand(ctx, 7))
	assert.Empty(t, f.mr.Keys())

	_, err = f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Brand: "7"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.posts.calls.Load())
}

func TestGetDashboardRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Range: "custom", From: "2025-01-09", To: "2025-01-01"})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Brand: "abc"})
	assert.ErrorIs(t, err, ErrBrandInvalid)

	_, err = f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Granularity: "hour"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetDashboardPropagatesRepoErrors(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("db down")
	f.posts.err = boom

	_, err := f.svc.GetDashboard(context.Background(), &dto.DashboardQueryDTO{Brand: "7"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.mr.Keys())
}

func TestGetPlatforms(t *testing.T) {
	f := newFixture(t)

	cards, err := f.svc.GetPlatforms(context.Background(), &dto.DashboardQueryDTO{Brand: "7", Platform: "instagram"})
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "all", cards[0].Platform)
	assert.Equal(t, int64(1400), cards[0].Value)
	assert.Equal(t, "instagram", cards[1].Platform)
	assert.Equal(t, "x", cards[2].Platform)
	assert.Equal(t, int64(400), cards[2].Value)
}

func TestWarmBrandStampsSyncedMarker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	synced, err := f.svc.IsSynced(ctx, 7)
	require.NoError(t, err)
	assert.False(t, synced)

	require.NoError(t, f.svc.WarmBrand(ctx, 7))

	synced, err = f.svc.IsSynced(ctx, 7)
	require.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, 900*time.Second, f.mr.TTL(consts.DashboardSyncedKey+"7"))

	res, err := f.svc.GetDashboard(ctx, &dto.DashboardQueryDTO{Brand: "7"})
	require.NoError(t, err)
	require.NotNil(t, res.SyncedAt)
	assert.Equal(t, int32(1), f.posts.calls.Load())

	f.mr.FastForward(901 * time.Second)
	synced, err = f.svc.IsSynced(ctx, 7)
	require.NoError(t, err)
	assert.False(t, synced)
}

func TestMarkDirtySkipsAllBrands(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.MarkDirty(context.Background(), 7, 0, 8, 7))

	members, err := f.mr.SMembers(consts.DashboardDirtyKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"7", "8"}, members)
}

func TestNewEngineRejectsBadTimezone(t *testing.T) {
	_, err := NewEngine(&config.DashboardConfig{Timezone: "Mars/Olympus"})
	assert.Error(t, err)

	e, err := NewEngine(&config.DashboardConfig{Timezone: "Asia/Tokyo", GrowthEstimator: "snapshot"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", e.Location().String())
}
