package repository

import (
	"Orbit/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepo interface {
	// ListByBrand live posts of a brand, brandID 0 lists every brand
	ListByBrand(ctx context.Context, brandID uint64) ([]*model.Post, error)
	// GetBrandIDByPostID brand owning a post, found is false for unknown ids
	GetBrandIDByPostID(ctx context.Context, postID uint64) (brandID uint64, found bool, err error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (r *postRepoImpl) ListByBrand(ctx context.Context, brandID uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if brandID != 0 {
		query = query.Where("brand_id = ?", brandID)
	}
	if err := query.Order("created_at ASC").Find(&posts).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "list posts of brand %d", brandID)
	}
	return posts, nil
}

func (r *postRepoImpl) GetBrandIDByPostID(ctx context.Context, postID uint64) (uint64, bool, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Select("id", "brand_id").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, pkgerrors.Wrapf(err, "get brand of post %d", postID)
	}
	return post.BrandID, true, nil
}
