package dto

// DashboardQueryDTO query string of the analytics endpoints
type DashboardQueryDTO struct {
	Brand       string `form:"brand" validate:"omitempty,max=20"`
	Platform    string `form:"platform" validate:"omitempty,max=32"`
	Metric      string `form:"metric" validate:"omitempty,oneof=engagement impressions followers growth engagementRate"`
	Range       string `form:"range" validate:"omitempty,oneof=last7 last14 last28 last30 last90 lastMonth custom"`
	From        string `form:"from" validate:"omitempty,max=35"`
	To          string `form:"to" validate:"omitempty,max=35"`
	Granularity string `form:"granularity" validate:"omitempty,oneof=day week month year"`
	Top         int    `form:"top" validate:"omitempty,min=1,max=100"`
}

// DateRangeDTO inclusive calendar days
type DateRangeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type TotalsDTO struct {
	Followers      int64   `json:"followers"`
	Impressions    int64   `json:"impressions"`
	Engagement     int64   `json:"engagement"`
	Posts          int64   `json:"posts"`
	EngagementRate float64 `json:"engagement_rate"`
	GrowthRate     float64 `json:"growth_rate"`
}

type PlatformCardDTO struct {
	Platform string  `json:"platform"`
	Value    int64   `json:"value"`
	Change   float64 `json:"change"`
}

type PlatformStatsDTO struct {
	Platform    string `json:"platform"`
	Followers   int64  `json:"followers"`
	Impressions int64  `json:"impressions"`
	Engagement  int64  `json:"engagement"`
	PostCount   int    `json:"post_count"`
}

type PointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type SeriesDTO struct {
	Engagement     []PointDTO `json:"engagement"`
	Impressions    []PointDTO `json:"impressions"`
	Followers      []PointDTO `json:"followers"`
	NetGrowth      []PointDTO `json:"net_growth"`
	EngagementRate []PointDTO `json:"engagement_rate"`
}

// TopPostDTO row of the top posts table
type TopPostDTO struct {
	PostID         uint64  `json:"post_id"`
	Score          float64 `json:"score"`
	EngagementRate float64 `json:"engagement_rate"`
	Engagement     int64   `json:"engagement"`
	Impressions    int64   `json:"impressions"`
	Date           string  `json:"date"`
	Content        string  `json:"content"`
	Platform       string  `json:"platform"`
}

// DashboardDTO analytics page payload
type DashboardDTO struct {
	Brand       string             `json:"brand"`
	Period      DateRangeDTO       `json:"range"`
	Granularity string             `json:"granularity"`
	Metric      string             `json:"metric"`
	Platform    string             `json:"platform"`
	Totals      TotalsDTO          `json:"totals"`
	Platforms   []PlatformCardDTO  `json:"platforms"`
	Breakdown   []PlatformStatsDTO `json:"breakdown"`
	Series      SeriesDTO          `json:"series"`
	TopPosts    []TopPostDTO       `json:"top_posts"`
	SyncedAt    *string            `json:"synced_at"`
}
