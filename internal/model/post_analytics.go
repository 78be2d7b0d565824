package model

import (
	"database/sql/driver"
	"time"
)

// SampleMetadata optional counters some platforms report
type SampleMetadata struct {
	Reach  *int64 `json:"reach,omitempty"`
	Clicks *int64 `json:"clicks,omitempty"`
	Views  *int64 `json:"views,omitempty"`
}

func (m *SampleMetadata) Scan(value interface{}) error {
	*m = SampleMetadata{}
	return scanJSON(value, m)
}

func (m SampleMetadata) Value() (driver.Value, error) {
	return valueJSON(m)
}

// PostAnalytics one daily metrics sample of a post
type PostAnalytics struct {
	ID          uint64         `gorm:"primaryKey" json:"id"`
	PostID      uint64         `gorm:"not null;index:idx_post_date,unique" json:"post_id"`
	MetricDate  time.Time      `gorm:"type:date;not null;index:idx_post_date,unique;index:idx_date;column:metric_date" json:"metric_date"`
	Likes       *int64         `gorm:"column:likes" json:"likes"`
	Comments    *int64         `gorm:"column:comments" json:"comments"`
	Shares      *int64         `gorm:"column:shares" json:"shares"`
	Impressions *int64         `gorm:"column:impressions" json:"impressions"`
	Metadata    SampleMetadata `gorm:"type:json" json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (PostAnalytics) TableName() string {
	return "post_analytics"
}
