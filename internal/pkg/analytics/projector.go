package analytics

// Point one chart sample
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TimeSeries aligned chart series, one point per bucket key
type TimeSeries struct {
	Engagement     []Point `json:"engagement"`
	Impressions    []Point `json:"impressions"`
	Followers      []Point `json:"followers"`
	NetGrowth      []Point `json:"net_growth"`
	EngagementRate []Point `json:"engagement_rate"`
}

// Totals KPI card values
type Totals struct {
	Followers      int64   `json:"followers"`
	Impressions    int64   `json:"impressions"`
	Engagement     int64   `json:"engagement"`
	Posts          int64   `json:"posts"`
	EngagementRate float64 `json:"engagement_rate"`
	GrowthRate     float64 `json:"growth_rate"`
}

// EngagementRate engagement per impression as a percentage, 0 without impressions.
func EngagementRate(engagement, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return Round1(float64(engagement) / float64(impressions) * 100)
}

// GrowthRate net growth relative to the follower base before it, 0 without a base.
func GrowthRate(netGrowth, followers int64) float64 {
	base := followers - netGrowth
	if base <= 0 {
		return 0
	}
	return Round1(float64(netGrowth) / float64(base) * 100)
}

// Project joins keys against series. Missing buckets fall back to an even share of
// the totals for flow metrics and to the current follower count for followers.
// Engagement rate is derived from the projected engagement and impressions of each
// bucket, so a fallback bucket shows the rate of its fallback flows.
func Project(keys []string, series map[string]*Bucket, totals Totals, est GrowthEstimator) TimeSeries {
	n := len(keys)
	ts := TimeSeries{
		Engagement:     make([]Point, 0, n),
		Impressions:    make([]Point, 0, n),
		Followers:      make([]Point, 0, n),
		NetGrowth:      make([]Point, 0, n),
		EngagementRate: make([]Point, 0, n),
	}
	if n == 0 {
		return ts
	}
	if est == nil {
		est = SeededMockEstimator{}
	}

	engagementShare := totals.Engagement / int64(n)
	impressionShare := totals.Impressions / int64(n)

	var prev *Bucket
	for _, key := range keys {
		b := series[key]

		engagement, impressions := engagementShare, impressionShare
		followers := totals.Followers
		if b != nil {
			engagement, impressions = b.Engagement, b.Impressions
			if b.Followers > 0 {
				followers = b.Followers
			}
		}

		ts.Engagement = append(ts.Engagement, Point{Date: key, Value: float64(engagement)})
		ts.Impressions = append(ts.Impressions, Point{Date: key, Value: float64(impressions)})
		ts.Followers = append(ts.Followers, Point{Date: key, Value: float64(followers)})
		ts.NetGrowth = append(ts.NetGrowth, Point{Date: key, Value: float64(est.NetGrowth(key, prev, b, followers))})
		ts.EngagementRate = append(ts.EngagementRate, Point{Date: key, Value: EngagementRate(engagement, impressions)})
		prev = b
	}
	return ts
}

// Sum of point values.
func Sum(points []Point) float64 {
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total
}
