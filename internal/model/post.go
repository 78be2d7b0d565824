package model

import (
	"database/sql/driver"
	"time"
)

// PostMetadata loosely typed bag reported by the posting API, decoded once here
type PostMetadata struct {
	Platform    *string `json:"platform,omitempty"`
	Followers   *int64  `json:"followers,omitempty"`
	PublishedAt *string `json:"publishedAt,omitempty"`
}

func (m *PostMetadata) Scan(value interface{}) error {
	*m = PostMetadata{}
	return scanJSON(value, m)
}

func (m PostMetadata) Value() (driver.Value, error) {
	return valueJSON(m)
}

type Post struct {
	ID        uint64       `gorm:"primaryKey" json:"id"`
	BrandID   uint64       `gorm:"not null;index:idx_brand_created" json:"brand_id"`
	Platform  *string      `gorm:"type:varchar(32)" json:"platform"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Metadata  PostMetadata `gorm:"type:json" json:"metadata"`
	IsDeleted bool         `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time    `gorm:"index:idx_brand_created" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
