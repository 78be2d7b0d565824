package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Metric series highlighted by the UI
type Metric string

const (
	MetricEngagement     Metric = "engagement"
	MetricImpressions    Metric = "impressions"
	MetricFollowers      Metric = "followers"
	MetricNetGrowth      Metric = "growth"
	MetricEngagementRate Metric = "engagementRate"
)

// ParseMetric parses a query value, defaulting to engagement.
func ParseMetric(raw string) (Metric, error) {
	switch m := Metric(strings.TrimSpace(raw)); m {
	case "":
		return MetricEngagement, nil
	case MetricEngagement, MetricImpressions, MetricFollowers, MetricNetGrowth, MetricEngagementRate:
		return m, nil
	default:
		return "", fmt.Errorf("unknown metric %q", raw)
	}
}

// Query dashboard request parameters. BrandID 0 means every brand.
type Query struct {
	BrandID     uint64
	Platform    string
	Metric      Metric
	Range       RangeName
	From        string
	To          string
	Granularity Granularity
	Top         int
}

// PlatformCard per-platform follower card
type PlatformCard struct {
	Platform string  `json:"platform"`
	Value    int64   `json:"value"`
	Change   float64 `json:"change"`
}

// Dashboard everything the analytics page renders
type Dashboard struct {
	Range       DateRange       `json:"range"`
	Granularity Granularity     `json:"granularity"`
	Metric      Metric          `json:"metric"`
	Platform    string          `json:"platform"`
	Totals      Totals          `json:"totals"`
	Platforms   []PlatformCard  `json:"platforms"`
	Breakdown   []PlatformStats `json:"breakdown"`
	Series      TimeSeries      `json:"series"`
	TopPosts    []PostRow       `json:"top_posts"`
}

// Engine composes the pure stages for one request. It holds configuration only.
type Engine struct {
	loc       *time.Location
	now       func() time.Time
	estimator GrowthEstimator
	topN      int
	weights   ScoreWeights
}

type Option func(*Engine)

func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithEstimator(est GrowthEstimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

func WithScoreWeights(w ScoreWeights) Option {
	return func(e *Engine) {
		if w.Rate > 0 || w.Volume > 0 {
			e.weights = w
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		loc:       time.UTC,
		now:       time.Now,
		estimator: SeededMockEstimator{},
		topN:      10,
		weights:   DefaultScoreWeights,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location timezone used for day boundaries.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Resolve resolves the query's range against the engine clock.
func (e *Engine) Resolve(q Query) (DateRange, error) {
	return ResolveRange(q.Range, q.From, q.To, e.now().In(e.loc))
}

// Compute runs the full pipeline. The only error is an invalid range or query value.
func (e *Engine) Compute(q Query, ds Dataset) (*Dashboard, error) {
	rng, err := e.Resolve(q)
	if err != nil {
		return nil, err
	}
	g, err := ParseGranularity(string(q.Granularity))
	if err != nil {
		return nil, err
	}
	metric, err := ParseMetric(string(q.Metric))
	if err != nil {
		return nil, err
	}
	platform, scoped := ParsePlatformScope(q.Platform)

	base := Scope{BrandID: q.BrandID, Range: rng}.Apply(ds)
	view := base
	if scoped {
		view = base.Narrow(platform)
	}

	cards, breakdown := e.platformCards(base, rng)

	totals := Totals{
		Followers: displayFollowers(view),
		Posts:     int64(len(view.PostsInRange)),
	}
	for _, s := range view.Samples {
		totals.Impressions += s.Impressions
		totals.Engagement += s.Engagement()
	}
	totals.EngagementRate = EngagementRate(totals.Engagement, totals.Impressions)

	series := buildSeries(view.Samples, view.Index, g)
	keys := GenerateKeys(rng, g)
	ts := Project(keys, series, totals, e.estimator)
	totals.GrowthRate = GrowthRate(int64(Sum(ts.NetGrowth)), totals.Followers)

	top := e.topN
	if q.Top > 0 {
		top = q.Top
	}

	platformLabel := AllScope
	if scoped {
		platformLabel = string(platform)
	}

	return &Dashboard{
		Range:       rng,
		Granularity: g,
		Metric:      metric,
		Platform:    platformLabel,
		Totals:      totals,
		Platforms:   cards,
		Breakdown:   breakdown,
		Series:      ts,
		TopPosts:    view.TopPosts(top, e.weights, e.loc),
	}, nil
}

// Platforms connected platform cards for the brand and range, "all" first.
func (e *Engine) Platforms(q Query, ds Dataset) ([]PlatformCard, error) {
	rng, err := e.Resolve(q)
	if err != nil {
		return nil, err
	}
	cards, _ := e.platformCards(Scope{BrandID: q.BrandID, Range: rng}.Apply(ds), rng)
	return cards, nil
}

func (e *Engine) platformCards(base Scoped, rng DateRange) ([]PlatformCard, []PlatformStats) {
	stats := base.RollupAll()

	cards := make([]PlatformCard, 0, len(stats)+1)
	cards = append(cards, PlatformCard{Platform: AllScope, Value: displayFollowers(base)})

	var changeSum float64
	for _, st := range stats {
		change := e.estimator.Change(st.Platform, rng)
		changeSum += change
		cards = append(cards, PlatformCard{
			Platform: string(st.Platform),
			Value:    st.Followers,
			Change:   change,
		})
	}
	if len(stats) > 0 {
		cards[0].Change = Round1(changeSum / float64(len(stats)))
	}
	return cards, stats
}

// displayFollowers sums per-platform max snapshots, falling back to the largest
// follower count reported in post metadata when no account reports one.
func displayFollowers(s Scoped) int64 {
	perPlatform := make(map[Platform]int64)
	for _, a := range s.Accounts {
		p := Normalize(a.Platform)
		perPlatform[p] = max(perPlatform[p], a.Followers)
	}
	var total int64
	for _, v := range perPlatform {
		total += v
	}
	if total > 0 {
		return total
	}
	for _, p := range s.Posts {
		total = max(total, p.FollowerSnapshot())
	}
	return total
}
