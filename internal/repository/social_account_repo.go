package repository

import (
	"Orbit/internal/model"
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type SocialAccountRepo interface {
	ListByBrand(ctx context.Context, brandID uint64) ([]*model.SocialAccount, error)
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

func (r *socialAccountRepoImpl) ListByBrand(ctx context.Context, brandID uint64) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	query := r.db.WithContext(ctx)
	if brandID != 0 {
		query = query.Where("brand_id = ?", brandID)
	}
	if err := query.Find(&accounts).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "list social accounts of brand %d", brandID)
	}
	return accounts, nil
}
