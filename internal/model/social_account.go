package model

import (
	"database/sql/driver"
	"time"
)

// AccountData platform_specific_data column
type AccountData struct {
	Followers *int64 `json:"followers,omitempty"`
}

func (d *AccountData) Scan(value interface{}) error {
	*d = AccountData{}
	return scanJSON(value, d)
}

func (d AccountData) Value() (driver.Value, error) {
	return valueJSON(d)
}

// SocialAccount connected account snapshot
type SocialAccount struct {
	ID                   uint64      `gorm:"primaryKey" json:"id"`
	BrandID              uint64      `gorm:"not null;index:idx_brand" json:"brand_id"`
	Platform             string      `gorm:"type:varchar(32);not null" json:"platform"`
	AccountName          string      `gorm:"type:varchar(255)" json:"account_name"`
	PlatformSpecificData AccountData `gorm:"type:json;column:platform_specific_data" json:"platform_specific_data"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
