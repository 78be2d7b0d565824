package repository

import (
	"Orbit/internal/model"
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostAnalyticsRepo interface {
	// ListByDateRange samples dated within [from, to] by calendar day.
	// brandID 0 returns samples of every brand, orphans included.
	ListByDateRange(ctx context.Context, brandID uint64, from, to time.Time) ([]*model.PostAnalytics, error)
}

type postAnalyticsRepoImpl struct {
	db *gorm.DB
}

func NewPostAnalyticsRepository(db *gorm.DB) PostAnalyticsRepo {
	return &postAnalyticsRepoImpl{db: db}
}

func (r *postAnalyticsRepoImpl) ListByDateRange(ctx context.Context, brandID uint64, from, to time.Time) ([]*model.PostAnalytics, error) {
	samples := make([]*model.PostAnalytics, 0)
	query := r.db.WithContext(ctx).
		Where("metric_date BETWEEN ? AND ?", from.Format(time.DateOnly), to.Format(time.DateOnly))
	if brandID != 0 {
		owned := r.db.Model(&model.Post{}).Select("id").Where("brand_id = ?", brandID)
		query = query.Where("post_id IN (?)", owned)
	}
	if err := query.Order("metric_date ASC").Find(&samples).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "list post analytics of brand %d", brandID)
	}
	return samples, nil
}
