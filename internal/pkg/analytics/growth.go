package analytics

import "math"

// GrowthEstimator supplies follower deltas and platform change percentages that the
// source data does not track historically.
type GrowthEstimator interface {
	// NetGrowth follower delta for the bucket at key. prev is nil for the first bucket
	// or when the previous bucket has no data.
	NetGrowth(key string, prev, cur *Bucket, followers int64) int64
	// Change percentage change shown on a platform card.
	Change(p Platform, r DateRange) float64
}

// SeededMockEstimator stable pseudo-random values seeded by bucket key.
type SeededMockEstimator struct{}

func (SeededMockEstimator) NetGrowth(key string, _, _ *Bucket, followers int64) int64 {
	scale := math.Max(10, float64(followers)/100)
	return int64(math.Floor(SeededRandom("growth:"+key) * scale))
}

func (SeededMockEstimator) Change(p Platform, r DateRange) float64 {
	seed := "change:" + string(p) + ":" + BucketKey(r.From, GranularityDay) + ":" + BucketKey(r.To, GranularityDay)
	return Round1(SeededRandom(seed)*20 - 5)
}

// SnapshotGrowthEstimator real deltas between consecutive follower snapshots.
type SnapshotGrowthEstimator struct{}

func (SnapshotGrowthEstimator) NetGrowth(_ string, prev, cur *Bucket, _ int64) int64 {
	if prev == nil || cur == nil || prev.Followers <= 0 || cur.Followers <= 0 {
		return 0
	}
	return cur.Followers - prev.Followers
}

// Change accounts expose current state only, so there is no history to compare.
func (SnapshotGrowthEstimator) Change(Platform, DateRange) float64 {
	return 0
}

// NewGrowthEstimator by config name: "snapshot" or anything else for the seeded mock.
func NewGrowthEstimator(name string) GrowthEstimator {
	if name == "snapshot" {
		return SnapshotGrowthEstimator{}
	}
	return SeededMockEstimator{}
}

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}
