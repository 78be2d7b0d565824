package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Granularity time-bucketing resolution
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// WeekKeysPerDay week granularity keys each calendar day separately instead of
// rolling up to Monday-aligned weeks. Pending product confirmation.
const WeekKeysPerDay = true

// ParseGranularity parses a query value, defaulting to day.
func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(raw))); g {
	case "":
		return GranularityDay, nil
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q", raw)
	}
}

// BucketKey maps an instant to the key of the bucket containing it.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format("2006-01")
	case GranularityYear:
		return t.Format("2006")
	default:
		// day and week
		return t.Format(time.DateOnly)
	}
}

// step advances t to the start of the next bucket.
func step(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(t.Year()+1, 1, 1, 0, 0, 0, 0, t.Location())
	default:
		return StartOfDay(t).AddDate(0, 0, 1)
	}
}

// bucketStart start instant of the bucket containing t.
func bucketStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	default:
		return StartOfDay(t)
	}
}
