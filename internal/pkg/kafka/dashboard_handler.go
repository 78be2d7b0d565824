package kafka

import (
	"Orbit/internal/pkg/consts"
	"Orbit/internal/pkg/monitoring"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// BrandCacheInvalidator dashboard cache operations the consumer drives
type BrandCacheInvalidator interface {
	InvalidateBrand(ctx context.Context, brandID uint64) error
	MarkDirty(ctx context.Context, brandIDs ...uint64) error
}

// PostBrandResolver maps analytics rows to the brand owning their post
type PostBrandResolver interface {
	GetBrandIDByPostID(ctx context.Context, postID uint64) (brandID uint64, found bool, err error)
}

// DashboardHandler consumes binlog events of the dashboard source tables and
// invalidates the affected brand caches
type DashboardHandler struct {
	cache   BrandCacheInvalidator
	posts   PostBrandResolver
	metrics *monitoring.Metrics
	tables  []string
}

func NewDashboardHandler(cache BrandCacheInvalidator, posts PostBrandResolver, metrics *monitoring.Metrics) *DashboardHandler {
	return &DashboardHandler{
		cache:   cache,
		posts:   posts,
		metrics: metrics,
		tables:  []string{consts.TablePosts, consts.TablePostAnalytics, consts.TableSocialAccounts},
	}
}

func (h *DashboardHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("dashboard consumer setup")
	return nil
}

func (h *DashboardHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("dashboard consumer cleanup")
	return nil
}

func (h *DashboardHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-dashboard consume claim", "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, h.logic); err != nil {
		log.Error("topic-dashboard process batch error", "err", err)
		return err
	}
	return nil
}

func (h *DashboardHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, h.tables...)
	if err != nil {
		h.metrics.CountCanal("unknown", "skipped")
		return err
	}
	if err = h.invalidate(ctx, canalMsg); err != nil {
		h.metrics.CountCanal(canalMsg.Table, "error")
		return err
	}
	h.metrics.CountCanal(canalMsg.Table, "ok")
	return nil
}

func (h *DashboardHandler) invalidate(ctx context.Context, canalMsg *CanalMessage) error {
	brands, err := h.affectedBrands(ctx, canalMsg)
	if err != nil {
		return err
	}
	if len(brands) == 0 {
		return nil
	}

	for _, brandID := range brands {
		if err = h.cache.InvalidateBrand(ctx, brandID); err != nil {
			return errors.Wrapf(err, "invalidate brand %d", brandID)
		}
	}
	log.InfoContext(ctx, "dashboard cache invalidated", "table", canalMsg.Table, "type", canalMsg.Type, "brands", brands)
	return h.cache.MarkDirty(ctx, brands...)
}

// affectedBrands brand ids touched by the event, old values included so a row
// moved between brands invalidates both
func (h *DashboardHandler) affectedBrands(ctx context.Context, msg *CanalMessage) ([]uint64, error) {
	seen := make(map[uint64]struct{})
	out := make([]uint64, 0, len(msg.Data))
	add := func(id uint64) {
		if id == 0 {
			return
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	rows := append(append([]map[string]interface{}{}, msg.Data...), msg.Old...)
	for _, row := range rows {
		switch msg.Table {
		case consts.TablePosts, consts.TableSocialAccounts:
			if id, ok := RowUint64(row, "brand_id"); ok {
				add(id)
			}
		case consts.TablePostAnalytics:
			postID, ok := RowUint64(row, "post_id")
			if !ok {
				continue
			}
			brandID, found, err := h.posts.GetBrandIDByPostID(ctx, postID)
			if err != nil {
				return nil, err
			}
			if found {
				add(brandID)
			}
		}
	}
	return out, nil
}
