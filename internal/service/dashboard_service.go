package service

import (
	"Orbit/internal/api/config"
	"Orbit/internal/api/dto"
	"Orbit/internal/model"
	"Orbit/internal/pkg/analytics"
	"Orbit/internal/pkg/consts"
	"Orbit/internal/pkg/monitoring"
	"Orbit/internal/pkg/redis"
	"Orbit/internal/pkg/util"
	"Orbit/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	// GetDashboard totals, platform cards, series and top posts, cached per brand
	GetDashboard(ctx context.Context, req *dto.DashboardQueryDTO) (*dto.DashboardDTO, error)
	// GetPlatforms connected platform cards, "all" first
	GetPlatforms(ctx context.Context, req *dto.DashboardQueryDTO) ([]*dto.PlatformCardDTO, error)
	// InvalidateBrand drops every cached dashboard of the brand and of the all-brands view
	InvalidateBrand(ctx context.Context, brandID uint64) error
	// MarkDirty queues brands for the warm job
	MarkDirty(ctx context.Context, brandIDs ...uint64) error
	// WarmBrand recomputes the default dashboard and stamps the synced marker
	WarmBrand(ctx context.Context, brandID uint64) error
	// IsSynced reports whether the brand was warmed within synced_ttl
	IsSynced(ctx context.Context, brandID uint64) (bool, error)
}

type dashboardServiceImpl struct {
	postRepo      repository.PostRepo
	analyticsRepo repository.PostAnalyticsRepo
	accountRepo   repository.SocialAccountRepo
	engine        *analytics.Engine
	metrics       *monitoring.Metrics
	cacheTTL      time.Duration
	syncedTTL     time.Duration
}

func NewDashboardService(
	postRepo repository.PostRepo,
	analyticsRepo repository.PostAnalyticsRepo,
	accountRepo repository.SocialAccountRepo,
	engine *analytics.Engine,
	cfg *config.DashboardConfig,
	metrics *monitoring.Metrics,
) DashboardService {
	return &dashboardServiceImpl{
		postRepo:      postRepo,
		analyticsRepo: analyticsRepo,
		accountRepo:   accountRepo,
		engine:        engine,
		metrics:       metrics,
		cacheTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		syncedTTL:     time.Duration(cfg.SyncedTTL) * time.Second,
	}
}

// NewEngine builds the analytics engine from the dashboard section
func NewEngine(cfg *config.DashboardConfig) (*analytics.Engine, error) {
	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}
	return analytics.NewEngine(
		analytics.WithLocation(loc),
		analytics.WithEstimator(analytics.NewGrowthEstimator(cfg.GrowthEstimator)),
		analytics.WithTopN(cfg.TopPosts),
		analytics.WithScoreWeights(analytics.ScoreWeights{Rate: cfg.RateWeight, Volume: cfg.VolumeWeight}),
	), nil
}

func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, req *dto.DashboardQueryDTO) (*dto.DashboardDTO, error) {
	q, err := toQuery(req)
	if err != nil {
		return nil, err
	}
	rng, err := s.engine.Resolve(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	key := cacheKey(q, rng)
	outcome := monitoring.CacheBypass
	if s.cacheTTL > 0 {
		outcome = monitoring.CacheMiss
		var cached dto.DashboardDTO
		if found, err := redis.GetJSON(ctx, key, &cached); err != nil {
			log.WarnContext(ctx, "dashboard cache read failed", "key", key, "err", err)
		} else if found {
			s.metrics.ObserveDashboard(monitoring.CacheHit, time.Since(start))
			return &cached, nil
		}
	}

	res, err := s.compute(ctx, q, rng)
	if err != nil {
		return nil, err
	}
	s.store(ctx, q.BrandID, key, res)
	s.metrics.ObserveDashboard(outcome, time.Since(start))
	return res, nil
}

func (s *dashboardServiceImpl) GetPlatforms(ctx context.Context, req *dto.DashboardQueryDTO) ([]*dto.PlatformCardDTO, error) {
	q, err := toQuery(req)
	if err != nil {
		return nil, err
	}
	rng, err := s.engine.Resolve(q)
	if err != nil {
		return nil, err
	}
	ds, err := s.loadDataset(ctx, q.BrandID, rng)
	if err != nil {
		return nil, err
	}
	cards, err := s.engine.Platforms(q, ds)
	if err != nil {
		return nil, queryError(err)
	}

	res := make([]*dto.PlatformCardDTO, 0, len(cards))
	if err = copier.Copy(&res, &cards); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *dashboardServiceImpl) InvalidateBrand(ctx context.Context, brandID uint64) error {
	segments := []string{util.FormatBrandID(brandID)}
	if brandID != 0 {
		segments = append(segments, consts.AllBrands)
	}
	for _, seg := range segments {
		setKey := consts.DashboardBrandKeysKey + seg
		keys, err := redis.GetSet(ctx, setKey)
		if err != nil {
			return err
		}
		if err = redis.DeleteKey(ctx, append(keys, setKey, consts.DashboardSyncedKey+seg)...); err != nil {
			return err
		}
	}
	return nil
}

func (s *dashboardServiceImpl) MarkDirty(ctx context.Context, brandIDs ...uint64) error {
	members := make([]string, 0, len(brandIDs))
	for _, id := range brandIDs {
		if id == 0 {
			continue
		}
		members = append(members, util.FormatBrandID(id))
	}
	return redis.SAdd(ctx, consts.DashboardDirtyKey, members...)
}

func (s *dashboardServiceImpl) WarmBrand(ctx context.Context, brandID uint64) error {
	q := analytics.Query{BrandID: brandID, Range: analytics.RangeLast7}
	rng, err := s.engine.Resolve(q)
	if err != nil {
		return err
	}
	now := time.Now().In(s.engine.Location()).Format(time.RFC3339)

	res, err := s.compute(ctx, q, rng)
	if err != nil {
		return err
	}
	res.SyncedAt = &now
	s.store(ctx, brandID, cacheKey(q, rng), res)

	return redis.SetWithExpiration(ctx, consts.DashboardSyncedKey+util.FormatBrandID(brandID), now, s.syncedTTL)
}

func (s *dashboardServiceImpl) IsSynced(ctx context.Context, brandID uint64) (bool, error) {
	return redis.Exists(ctx, consts.DashboardSyncedKey+util.FormatBrandID(brandID))
}

func (s *dashboardServiceImpl) compute(ctx context.Context, q analytics.Query, rng analytics.DateRange) (*dto.DashboardDTO, error) {
	ds, err := s.loadDataset(ctx, q.BrandID, rng)
	if err != nil {
		return nil, err
	}
	board, err := s.engine.Compute(q, ds)
	if err != nil {
		return nil, queryError(err)
	}

	res, err := toDashboardDTO(board)
	if err != nil {
		return nil, err
	}
	res.Brand = util.FormatBrandID(q.BrandID)

	synced, err := redis.GetValue(ctx, consts.DashboardSyncedKey+res.Brand)
	if err != nil {
		log.WarnContext(ctx, "read synced marker failed", "brand", res.Brand, "err", err)
	} else if synced != "" {
		res.SyncedAt = &synced
	}
	return res, nil
}

// loadDataset fetches the three record sets concurrently
func (s *dashboardServiceImpl) loadDataset(ctx context.Context, brandID uint64, rng analytics.DateRange) (analytics.Dataset, error) {
	var (
		posts    []*model.Post
		samples  []*model.PostAnalytics
		accounts []*model.SocialAccount
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.ListByBrand(gCtx, brandID)
		return err
	})
	g.Go(func() error {
		var err error
		samples, err = s.analyticsRepo.ListByDateRange(gCtx, brandID, rng.From, rng.To)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accountRepo.ListByBrand(gCtx, brandID)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Dataset{}, err
	}
	return toDataset(posts, samples, accounts), nil
}

// store caches res and records its key under the brand so invalidation can find it
func (s *dashboardServiceImpl) store(ctx context.Context, brandID uint64, key string, res *dto.DashboardDTO) {
	if s.cacheTTL <= 0 {
		return
	}
	if err := redis.SetJSON(ctx, key, res, s.cacheTTL); err != nil {
		log.WarnContext(ctx, "dashboard cache write failed", "key", key, "err", err)
		return
	}
	setKey := consts.DashboardBrandKeysKey + util.FormatBrandID(brandID)
	if err := redis.SAddWithExpiration(ctx, setKey, s.cacheTTL, key); err != nil {
		log.WarnContext(ctx, "dashboard cache index failed", "key", setKey, "err", err)
	}
}

func toQuery(req *dto.DashboardQueryDTO) (analytics.Query, error) {
	brandID, err := util.ParseBrandID(req.Brand)
	if err != nil {
		return analytics.Query{}, ErrBrandInvalid
	}
	return analytics.Query{
		BrandID:     brandID,
		Platform:    req.Platform,
		Metric:      analytics.Metric(req.Metric),
		Range:       analytics.RangeName(req.Range),
		From:        req.From,
		To:          req.To,
		Granularity: analytics.Granularity(req.Granularity),
		Top:         req.Top,
	}, nil
}

// queryError keeps ErrInvalidRange and maps the remaining engine errors to ErrParamInvalid
func queryError(err error) error {
	if errors.Is(err, ErrInvalidRange) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrParamInvalid, err)
}

// cacheKey dashboard:cache:<brand>:<platform>:<metric>:<granularity>:<top>:<from>~<to>
func cacheKey(q analytics.Query, rng analytics.DateRange) string {
	platform, scoped := analytics.ParsePlatformScope(q.Platform)
	platformSeg := analytics.AllScope
	if scoped {
		platformSeg = string(platform)
	}
	metric := strings.TrimSpace(string(q.Metric))
	if metric == "" {
		metric = string(analytics.MetricEngagement)
	}
	granularity := strings.ToLower(strings.TrimSpace(string(q.Granularity)))
	if granularity == "" {
		granularity = string(analytics.GranularityDay)
	}
	return fmt.Sprintf("%s%s:%s:%s:%s:%d:%s~%s",
		consts.DashboardCacheKey,
		util.FormatBrandID(q.BrandID),
		platformSeg,
		metric,
		granularity,
		q.Top,
		rng.From.Format(time.DateOnly),
		rng.To.Format(time.DateOnly),
	)
}

func toDashboardDTO(board *analytics.Dashboard) (*dto.DashboardDTO, error) {
	res := &dto.DashboardDTO{}
	if err := copier.CopyWithOption(res, board, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	res.Period = dto.DateRangeDTO{
		From: board.Range.From.Format(time.DateOnly),
		To:   board.Range.To.Format(time.DateOnly),
	}
	return res, nil
}
