package analytics

import "time"

// FilterByDateRange keeps items whose date falls inside r. Items without a usable
// date are dropped.
func FilterByDateRange[T any](items []T, r DateRange, dateOf func(T) (time.Time, bool)) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		t, ok := dateOf(it)
		if !ok || t.IsZero() {
			continue
		}
		if r.Contains(t) {
			out = append(out, it)
		}
	}
	return out
}

// FilterByPlatform keeps items on platform p. scoped=false keeps everything.
func FilterByPlatform[T any](items []T, p Platform, scoped bool, platformOf func(T) Platform) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !scoped || platformOf(it) == p {
			out = append(out, it)
		}
	}
	return out
}

// FilterByBrand keeps items of brandID. 0 keeps everything.
func FilterByBrand[T any](items []T, brandID uint64, brandOf func(T) uint64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if brandID == 0 || brandOf(it) == brandID {
			out = append(out, it)
		}
	}
	return out
}

func postDate(p Post) (time.Time, bool)              { return p.Date() }
func postPlatform(p Post) Platform                   { return p.CanonicalPlatform() }
func postBrand(p Post) uint64                        { return p.BrandID }
func sampleDate(s AnalyticsSample) (time.Time, bool) { return s.Date, !s.Date.IsZero() }
func accountPlatform(a SocialAccount) Platform       { return Normalize(a.Platform) }
func accountBrand(a SocialAccount) uint64            { return a.BrandID }

// Scope query predicates applied once per computation
type Scope struct {
	BrandID  uint64
	Platform Platform
	Scoped   bool
	Range    DateRange
}

// Scoped dataset filtered once, shared by every reducer
type Scoped struct {
	// Posts in scope regardless of date, used to resolve sample owners.
	Posts []Post
	// PostsInRange subset of Posts dated inside the range.
	PostsInRange []Post
	Samples      []AnalyticsSample
	Accounts     []SocialAccount
	Index        map[uint64]Post
}

// Apply filters ds by brand and range, then narrows to the platform when scoped.
// Orphan samples survive only while no brand or platform predicate is active.
func (s Scope) Apply(ds Dataset) Scoped {
	posts := FilterByBrand(ds.Posts, s.BrandID, postBrand)
	index := indexPosts(posts)

	inRange := FilterByDateRange(rebaseSamples(ds.Samples, s.Range.From.Location()), s.Range, sampleDate)
	samples := make([]AnalyticsSample, 0, len(inRange))
	for _, smp := range inRange {
		if _, ok := index[smp.PostID]; ok || s.BrandID == 0 {
			samples = append(samples, smp)
		}
	}

	base := Scoped{
		Posts:        posts,
		PostsInRange: FilterByDateRange(posts, s.Range, postDate),
		Samples:      samples,
		Accounts:     FilterByBrand(ds.Accounts, s.BrandID, accountBrand),
		Index:        index,
	}
	if !s.Scoped {
		return base
	}
	return base.Narrow(s.Platform)
}

// Narrow restricts an already scoped dataset to platform p.
func (s Scoped) Narrow(p Platform) Scoped {
	posts := FilterByPlatform(s.Posts, p, true, postPlatform)
	index := indexPosts(posts)

	samples := make([]AnalyticsSample, 0, len(s.Samples))
	for _, smp := range s.Samples {
		if _, ok := index[smp.PostID]; ok {
			samples = append(samples, smp)
		}
	}

	return Scoped{
		Posts:        posts,
		PostsInRange: FilterByPlatform(s.PostsInRange, p, true, postPlatform),
		Samples:      samples,
		Accounts:     FilterByPlatform(s.Accounts, p, true, accountPlatform),
		Index:        index,
	}
}

func indexPosts(posts []Post) map[uint64]Post {
	index := make(map[uint64]Post, len(posts))
	for _, p := range posts {
		index[p.ID] = p
	}
	return index
}

// rebaseSamples copies samples with their calendar day pinned to loc, so a DATE column
// read back as UTC midnight stays on the same day.
func rebaseSamples(samples []AnalyticsSample, loc *time.Location) []AnalyticsSample {
	out := make([]AnalyticsSample, len(samples))
	for i, s := range samples {
		if !s.Date.IsZero() {
			y, m, d := s.Date.Date()
			s.Date = time.Date(y, m, d, 0, 0, 0, 0, loc)
		}
		out[i] = s
	}
	return out
}
