package job

import (
	"Orbit/internal/pkg/consts"
	"Orbit/internal/pkg/logger"
	"Orbit/internal/pkg/monitoring"
	"Orbit/internal/pkg/redis"
	"Orbit/internal/pkg/util"
	"Orbit/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const warmLockTTL = 2 * time.Minute

// DashboardWarmJob recomputes default dashboards of brands whose source rows changed
type DashboardWarmJob struct {
	dashboardSvc service.DashboardService
	metrics      *monitoring.Metrics
}

func NewDashboardWarmJob(dashboardSvc service.DashboardService, metrics *monitoring.Metrics) *DashboardWarmJob {
	return &DashboardWarmJob{dashboardSvc: dashboardSvc, metrics: metrics}
}

func (s *DashboardWarmJob) Run() {
	traceID := "job-dashboard-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	warmed, skipped, err := s.RunOnce(ctx, traceID)
	s.metrics.CountWarm("warmed", warmed)
	s.metrics.CountWarm("skipped", skipped)
	if err != nil {
		log.ErrorContext(ctx, "dashboard warm job failed", "err", err)
		return
	}
	if warmed > 0 || skipped > 0 {
		log.InfoContext(ctx, "dashboard warm job done", "warmed", warmed, "skipped", skipped)
	}
}

// RunOnce drains the dirty set once. Brands with a live synced marker are skipped,
// brands that fail to warm go back into the dirty set.
func (s *DashboardWarmJob) RunOnce(ctx context.Context, owner string) (warmed, skipped int, err error) {
	locked, err := redis.SetNX(ctx, consts.DashboardWarmLock, owner, warmLockTTL)
	if err != nil || !locked {
		return 0, 0, err
	}
	defer func() {
		if _, err := redis.ReleaseLock(ctx, consts.DashboardWarmLock, owner); err != nil {
			log.WarnContext(ctx, "release warm lock error", "err", err)
		}
	}()

	processingKey := consts.DashboardDirtyKey + ":processing"
	ok, err := redis.Rename(ctx, consts.DashboardDirtyKey, processingKey)
	if err != nil || !ok {
		return 0, 0, err
	}
	defer func() {
		_ = redis.DeleteKey(ctx, processingKey)
	}()

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		return 0, 0, err
	}
	brandIDs, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		return 0, 0, err
	}

	for _, brandID := range brandIDs {
		synced, err := s.dashboardSvc.IsSynced(ctx, brandID)
		if err != nil {
			log.WarnContext(ctx, "read synced marker error", "brand", brandID, "err", err)
		}
		if synced {
			skipped++
			continue
		}
		if err = s.dashboardSvc.WarmBrand(ctx, brandID); err != nil {
			log.ErrorContext(ctx, "warm dashboard error", "brand", brandID, "err", err)
			s.metrics.CountWarm("failed", 1)
			if err = s.dashboardSvc.MarkDirty(ctx, brandID); err != nil {
				log.ErrorContext(ctx, "requeue dirty brand error", "brand", brandID, "err", err)
			}
			continue
		}
		warmed++
	}
	return warmed, skipped, nil
}
